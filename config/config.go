// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the named protocol parameters of the validation
// protocol and loads node configuration from file, flags, and environment.
package config

import (
	"fmt"
)

// Dispatch failure policies. See engine.DispatchFailurePolicy.
const (
	DispatchPolicyCrash     = "crash"
	DispatchPolicyPropagate = "propagate"
	DispatchPolicyRetry     = "retry"
)

// Parameters are the protocol constants every node must agree on.
type Parameters struct {
	// ValidatorThreshold is the number of distinct validators drawn into
	// the committee of each entity.
	ValidatorThreshold int `mapstructure:"validator-threshold"`

	// SignatureThreshold is the minimum number of distinct committee
	// certificates a transaction needs to be considered validated.
	SignatureThreshold int `mapstructure:"signature-threshold"`

	// MinimumStake is the stake below which an account is ineligible for
	// committee sampling and block proposal.
	MinimumStake uint64 `mapstructure:"minimum-stake"`

	// MinimumTransactionsPerBlock is the smallest transaction count a
	// correct block may carry.
	MinimumTransactionsPerBlock int `mapstructure:"minimum-transactions-per-block"`
}

// DefaultParameters returns the LightChain protocol defaults.
func DefaultParameters() Parameters {
	return Parameters{
		ValidatorThreshold:          DefaultValidatorThreshold,
		SignatureThreshold:          DefaultSignatureThreshold,
		MinimumStake:                DefaultMinimumStake,
		MinimumTransactionsPerBlock: DefaultMinimumTransactionsPerBlock,
	}
}

// Validate checks internal consistency of the parameters.
func (p Parameters) Validate() error {
	if p.ValidatorThreshold < 1 {
		return fmt.Errorf("validator threshold must be positive, got %d", p.ValidatorThreshold)
	}
	if p.SignatureThreshold < 1 {
		return fmt.Errorf("signature threshold must be positive, got %d", p.SignatureThreshold)
	}
	if p.SignatureThreshold > p.ValidatorThreshold {
		return fmt.Errorf(
			"signature threshold %d exceeds validator threshold %d",
			p.SignatureThreshold,
			p.ValidatorThreshold,
		)
	}
	if p.MinimumTransactionsPerBlock < 1 {
		return fmt.Errorf(
			"minimum transactions per block must be positive, got %d",
			p.MinimumTransactionsPerBlock,
		)
	}
	return nil
}

// Config is the full node configuration.
type Config struct {
	LogLevel          string `mapstructure:"log-level"`
	MetricsPort       uint16 `mapstructure:"metrics-port"`
	KeyPath           string `mapstructure:"key-path"`
	DispatchPolicy    string `mapstructure:"dispatch-policy"`
	SnapshotCacheSize int    `mapstructure:"snapshot-cache-size"`

	Parameters Parameters `mapstructure:",squash"`
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch c.DispatchPolicy {
	case DispatchPolicyCrash, DispatchPolicyPropagate, DispatchPolicyRetry:
	default:
		return fmt.Errorf("unknown dispatch policy %q", c.DispatchPolicy)
	}
	if c.SnapshotCacheSize < 1 {
		return fmt.Errorf("snapshot cache size must be positive, got %d", c.SnapshotCacheSize)
	}
	return c.Parameters.Validate()
}
