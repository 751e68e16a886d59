// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"strconv"

	"github.com/dacolabs/autofuzz/internal/batch"
	"github.com/dacolabs/autofuzz/internal/cmdctx"
	"github.com/dacolabs/autofuzz/internal/output"
	"github.com/dacolabs/autofuzz/internal/prompts"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateOptions struct {
	source     sourceOptions
	count      int
	workers    int
	format     string
	seed       string
	randomSeed bool
	output     string
	config     string
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [target]",
		Short: "Generate random values for a target",
		Long: `Derive the target's shape and generate random values that its schema
accepts. Output is deterministic for a given seed and worker count.`,
		Example: `  # Generate the configured number of values for a target
  autofuzz generate users

  # Generate 1000 values with 4 workers as JSON lines
  autofuzz generate users -n 1000 --workers 4 --format jsonl -o users.jsonl

  # Generate from a schema file with a fresh random seed
  autofuzz generate --schema schemas/order.json --random-seed`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: cmdctx.PreRunLoadOptional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, root, opts)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "Number of values (default: the target's count)")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "Number of parallel generators")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "json", "Output format (json, jsonl, yaml)")
	cmd.Flags().StringVar(&opts.seed, "seed", "", "Random seed (default: project seed or $"+SeedEnv+")")
	cmd.Flags().BoolVar(&opts.randomSeed, "random-seed", false, "Use a fresh random seed and report it")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write values to this file instead of stdout")
	cmd.Flags().StringVar(&opts.config, "config", "", "YAML file of generation settings applied over the project's")
	cmd.MarkFlagsMutuallyExclusive("seed", "random-seed")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string, root *rootOptions, opts *generateOptions) error {
	logger := root.log()

	src, err := resolveSource(cmd, args, &opts.source, root.getenv)
	if err != nil {
		return err
	}
	writer, err := output.ByName(opts.format)
	if err != nil {
		return err
	}

	if opts.config != "" {
		if src.gen, err = genconfig.Load(opts.config, src.gen); err != nil {
			return fmt.Errorf("failed to load %s: %w", opts.config, err)
		}
	}
	switch {
	case opts.randomSeed:
		src.gen = src.gen.With(genconfig.WithSeed(uuid.NewString()))
		logger.Info("using random seed", zap.String("seed", src.gen.RandomSeed))
	case opts.seed != "":
		src.gen = src.gen.With(genconfig.WithSeed(opts.seed))
	}
	if err := src.gen.Validate(); err != nil {
		return err
	}

	count := src.count
	if cmd.Flags().Changed("count") {
		count = opts.count
	}
	if count < 0 {
		return fmt.Errorf("count must not be negative, got %d", count)
	}

	oracle, err := src.oracle()
	if err != nil {
		return err
	}
	values, err := batch.Run(cmd.Context(), oracle.Fill(), batch.Request{
		Count:   count,
		Workers: opts.workers,
		Seed:    src.gen.RandomSeed,
	}, src.factoryOptions(logger)...)
	if err != nil {
		return err
	}

	if opts.output == "" {
		return writer.Write(cmd.OutOrStdout(), values)
	}
	if err := writer.WriteFile(opts.output, values); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.output, err)
	}
	logger.Debug("values written", zap.String("path", opts.output), zap.Int("count", len(values)))

	prompts.PrintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Target", Value: src.name},
		{Label: "Values", Value: strconv.Itoa(len(values))},
		{Label: "Seed", Value: src.gen.RandomSeed},
		{Label: "Output", Value: opts.output},
	}, "Generation completed")
	return nil
}
