// Copyright (C) 2025, LightChain Network. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/holiman/uint256"
	"github.com/luxfi/crypto/bls"
	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/lightchain-network/lightchain"
	"github.com/lightchain-network/lightchain/config"
	"github.com/lightchain-network/lightchain/engine"
	"github.com/lightchain-network/lightchain/local"
	"github.com/lightchain-network/lightchain/network"
	"github.com/lightchain-network/lightchain/state"
	"github.com/lightchain-network/lightchain/storage"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "lightchain",
	Short:   "LightChain validator node",
	Long:    `LightChain node running the stake-weighted committee validation engine.`,
	Version: fmt.Sprintf("%s (built %s)", version, buildDate),
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the validator engine",
	Long:  `Start a node that validates proposed transactions and blocks it is assigned to.`,
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String(config.ConfigFileKey, "", "Path to JSON config file")
	runCmd.Flags().String(config.LogLevelKey, "info", "Log level")
	runCmd.Flags().Uint16(config.MetricsPortKey, config.DefaultMetricsPort, "Prometheus metrics port")
	runCmd.Flags().String(config.KeyPathKey, "", "Path to the node's BLS secret key (generated when empty)")
	runCmd.Flags().Int(config.ValidatorThresholdKey, config.DefaultValidatorThreshold, "Committee size per entity")
	runCmd.Flags().Int(config.SignatureThresholdKey, config.DefaultSignatureThreshold, "Certificates needed per validated transaction")
	runCmd.Flags().Uint64(config.MinimumStakeKey, config.DefaultMinimumStake, "Minimum stake for committee eligibility")
	runCmd.Flags().Int(config.MinimumTransactionsPerBlockKey, config.DefaultMinimumTransactionsPerBlock, "Minimum transactions per block")
	runCmd.Flags().String(config.DispatchPolicyKey, config.DispatchPolicyCrash, "Certificate dispatch failure policy (crash|propagate|retry)")
	runCmd.Flags().Int(config.SnapshotCacheSizeKey, config.DefaultSnapshotCacheSize, "Snapshot LRU cache size")
}

func run(cmd *cobra.Command, _ []string) error {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to build viper: %w", err)
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := log.NewLogger("lightchain")

	sk, err := loadOrGenerateKey(cfg.KeyPath)
	if err != nil {
		return fmt.Errorf("failed to initialize node key: %w", err)
	}
	publicKey := bls.PublicKeyToCompressedBytes(bls.PublicFromSecretKey(sk))
	nodeID := lightchain.Identifier(lightchain.ComputeHash256Array(publicKey))
	loc := local.New(nodeID, sk)

	// Single-node genesis; joining an existing network replaces this with
	// the bootstrapped snapshot.
	genesis := state.NewSnapshot(lightchain.Identifier{}, 0, []*lightchain.Account{
		lightchain.NewAccount(nodeID, publicKey, cfg.Parameters.MinimumStake, uint256.NewInt(0), lightchain.Identifier{}),
	})
	st, err := state.NewCachedState(state.NewMemState(genesis), cfg.SnapshotCacheSize)
	if err != nil {
		return fmt.Errorf("failed to build state: %w", err)
	}

	policy, err := engine.ParseDispatchPolicy(cfg.DispatchPolicy)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	hub := network.NewHub()
	if _, err := engine.New(
		logger,
		hub.NetworkOf(nodeID),
		loc,
		st,
		storage.NewIdentifiers(),
		cfg.Parameters,
		engine.WithDispatchPolicy(policy),
		engine.WithMetrics(engine.NewMetrics(registry)),
	); err != nil {
		return fmt.Errorf("failed to start validator engine: %w", err)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Error("metrics server stopped", log.Err(err))
		}
	}()

	logger.Info(
		"validator engine running",
		log.Stringer("nodeID", nodeID),
		log.String("dispatch_policy", cfg.DispatchPolicy),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
	return nil
}

func loadOrGenerateKey(path string) (*bls.SecretKey, error) {
	if path == "" {
		return bls.NewSecretKey()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bls.SecretKeyFromBytes(b)
}
