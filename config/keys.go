// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"
	VersionKey    = "version"
	HelpKey       = "help"

	// Top-level configuration keys
	LogLevelKey    = "log-level"
	MetricsPortKey = "metrics-port"
	KeyPathKey     = "key-path"

	// Protocol parameter keys
	ValidatorThresholdKey          = "validator-threshold"
	SignatureThresholdKey          = "signature-threshold"
	MinimumStakeKey                = "minimum-stake"
	MinimumTransactionsPerBlockKey = "minimum-transactions-per-block"
	DispatchPolicyKey              = "dispatch-policy"
	SnapshotCacheSizeKey           = "snapshot-cache-size"
)

const (
	defaultLogLevel = "info"

	// DefaultMetricsPort is the port the Prometheus endpoint listens on.
	DefaultMetricsPort = 9090

	// DefaultValidatorThreshold is the committee size drawn per entity.
	DefaultValidatorThreshold = 4

	// DefaultSignatureThreshold is the number of distinct committee
	// certificates a transaction needs to count as validated.
	DefaultSignatureThreshold = 3

	// DefaultMinimumStake is the stake an account needs to be eligible
	// for committee sampling and block proposal.
	DefaultMinimumStake = 4

	// DefaultMinimumTransactionsPerBlock is the smallest transaction
	// count a correct block may carry.
	DefaultMinimumTransactionsPerBlock = 1

	// DefaultSnapshotCacheSize bounds the snapshot LRU in front of the
	// state store.
	DefaultSnapshotCacheSize = 64
)
