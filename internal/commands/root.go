// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"fmt"
	"os"

	"github.com/dacolabs/autofuzz/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SeedEnv names the environment variable that sets the seed when no --seed
// flag is given.
const SeedEnv = "AUTOFUZZ_SEED"

type rootOptions struct {
	verbose bool
	logger  *zap.Logger
	getenv  func(string) string
}

// log returns the command logger, or a no-op logger before it is built.
func (o *rootOptions) log() *zap.Logger {
	if o.logger == nil {
		return zap.NewNop()
	}
	return o.logger
}

// NewRootCmd creates and returns the root command for the CLI. getenv is
// consulted for SeedEnv; nil means os.Getenv.
func NewRootCmd(getenv func(string) string) *cobra.Command {
	if getenv == nil {
		getenv = os.Getenv
	}
	opts := &rootOptions{getenv: getenv}

	rootCmd := &cobra.Command{
		Use:   "autofuzz",
		Short: "Generate typed random test data from schemas",
		Long: `autofuzz derives the shape of a target from a validating oracle and
generates random values that the oracle accepts.

Targets are JSON Schema files listed in autofuzz.yaml, or any schema file
passed with --schema.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if opts.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log derivation and generation details to stderr")

	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newDeriveCmd(opts))
	rootCmd.AddCommand(newGenerateCmd(opts))
	rootCmd.AddCommand(newTargetsCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}
