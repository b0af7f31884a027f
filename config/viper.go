// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// NewConfig builds and validates the node configuration from a prepared
// viper instance.
func NewConfig(v *viper.Viper) (Config, error) {
	cfg, err := buildConfig(v)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("failed to validate configuration: %w", err)
	}
	return cfg, nil
}

// BuildViper builds the viper instance. All config keys may be provided
// via flags, config file, or environment variables; each item takes
// precedence over the one after it.
func BuildViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	// Map flag names to env var names. Hyphens are replaced with underscores.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if v.IsSet(ConfigFileKey) {
		v.SetConfigFile(v.GetString(ConfigFileKey))
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	return v, nil
}

func setDefaultConfigValues(v *viper.Viper) {
	v.SetDefault(LogLevelKey, defaultLogLevel)
	v.SetDefault(MetricsPortKey, DefaultMetricsPort)
	v.SetDefault(ValidatorThresholdKey, DefaultValidatorThreshold)
	v.SetDefault(SignatureThresholdKey, DefaultSignatureThreshold)
	v.SetDefault(MinimumStakeKey, DefaultMinimumStake)
	v.SetDefault(MinimumTransactionsPerBlockKey, DefaultMinimumTransactionsPerBlock)
	v.SetDefault(DispatchPolicyKey, DispatchPolicyCrash)
	v.SetDefault(SnapshotCacheSizeKey, DefaultSnapshotCacheSize)
}

func buildConfig(v *viper.Viper) (Config, error) {
	setDefaultConfigValues(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal viper config: %w", err)
	}
	return cfg, nil
}
