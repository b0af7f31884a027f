// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v, err := BuildViper(fs)
	require.NoError(t, err)

	cfg, err := NewConfig(v)
	require.NoError(t, err)

	require.Equal(t, defaultLogLevel, cfg.LogLevel)
	require.Equal(t, uint16(DefaultMetricsPort), cfg.MetricsPort)
	require.Equal(t, DispatchPolicyCrash, cfg.DispatchPolicy)
	require.Equal(t, DefaultSnapshotCacheSize, cfg.SnapshotCacheSize)
	require.Equal(t, DefaultParameters(), cfg.Parameters)
}

func TestConfigFlagsOverrideDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int(ValidatorThresholdKey, DefaultValidatorThreshold, "")
	fs.Int(SignatureThresholdKey, DefaultSignatureThreshold, "")
	fs.String(DispatchPolicyKey, DispatchPolicyCrash, "")
	require.NoError(t, fs.Parse([]string{
		"--validator-threshold=7",
		"--signature-threshold=5",
		"--dispatch-policy=retry",
	}))

	v, err := BuildViper(fs)
	require.NoError(t, err)
	cfg, err := NewConfig(v)
	require.NoError(t, err)

	require.Equal(t, 7, cfg.Parameters.ValidatorThreshold)
	require.Equal(t, 5, cfg.Parameters.SignatureThreshold)
	require.Equal(t, DispatchPolicyRetry, cfg.DispatchPolicy)
}

func TestConfigEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MINIMUM_STAKE", "9")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	v, err := BuildViper(fs)
	require.NoError(t, err)
	cfg, err := NewConfig(v)
	require.NoError(t, err)

	require.Equal(t, uint64(9), cfg.Parameters.MinimumStake)
}

func TestParametersValidate(t *testing.T) {
	require.NoError(t, DefaultParameters().Validate())

	p := DefaultParameters()
	p.ValidatorThreshold = 0
	require.Error(t, p.Validate())

	p = DefaultParameters()
	p.SignatureThreshold = p.ValidatorThreshold + 1
	require.Error(t, p.Validate())

	p = DefaultParameters()
	p.MinimumTransactionsPerBlock = 0
	require.Error(t, p.Validate())
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		LogLevel:          defaultLogLevel,
		MetricsPort:       DefaultMetricsPort,
		DispatchPolicy:    DispatchPolicyPropagate,
		SnapshotCacheSize: DefaultSnapshotCacheSize,
		Parameters:        DefaultParameters(),
	}
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.DispatchPolicy = "shrug"
	require.Error(t, bad.Validate())

	bad = cfg
	bad.SnapshotCacheSize = 0
	require.Error(t, bad.Validate())
}
