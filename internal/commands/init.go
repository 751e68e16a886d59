// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dacolabs/autofuzz/internal/config"
	"github.com/dacolabs/autofuzz/internal/prompts"
	"github.com/dacolabs/autofuzz/internal/session"
	"github.com/spf13/cobra"
)

type initOptions struct {
	seed           string
	target         string
	schema         string
	count          int
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new autofuzz project",
		Long: `Initialize a new autofuzz project with an autofuzz.yaml configuration file.
Optionally registers a first target.`,
		Example: `  # Interactive mode
  autofuzz init

  # Non-interactive
  autofuzz init --non-interactive
  autofuzz init --seed fixtures --target users --schema schemas/user.yaml --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.seed, "seed", "", "Random seed for the project")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "Name of a first target")
	cmd.Flags().StringVarP(&opts.schema, "schema", "s", "", "Schema file of the first target")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "Values generated per run for the first target")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(w io.Writer, opts *initOptions) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	// Check that the current directory isn't already initialized
	cfgPath := filepath.Join(cwd, session.ConfigFileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("autofuzz.yaml already exists; project already initialized")
	}

	if opts.nonInteractive {
		if (opts.target == "") != (opts.schema == "") {
			return errors.New("--target and --schema must be given together")
		}
	} else {
		addTarget := opts.target != ""
		count := ""
		if opts.count > 0 {
			count = strconv.Itoa(opts.count)
		}
		if err := prompts.RunInitForm(&opts.seed, &opts.target, &opts.schema, &count, &addTarget); err != nil {
			return err
		}
		if !addTarget {
			opts.target, opts.schema = "", ""
		}
		if count != "" {
			if opts.count, err = strconv.Atoi(count); err != nil {
				return fmt.Errorf("invalid count %q", count)
			}
		}
	}

	cfg := config.Config{Version: config.CurrentConfigVersion}
	if opts.seed != "" {
		cfg.Generation.Seed = &opts.seed
	}
	if opts.target != "" {
		if err := prompts.IdentifierValidator(map[string]config.Target{})(opts.target); err != nil {
			return fmt.Errorf("invalid target name: %w", err)
		}
		if _, err := session.LoadSchema(cwd, opts.schema); err != nil {
			return err
		}
		cfg.Targets = map[string]config.Target{
			opts.target: {Schema: filepath.ToSlash(opts.schema), Count: opts.count},
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	fields := []prompts.ResultField{{Label: "Config", Value: session.ConfigFileName}}
	if opts.target != "" {
		fields = append(fields, prompts.ResultField{Label: "Target", Value: opts.target})
	}
	prompts.PrintResult(w, fields, "Initialization completed")
	return nil
}
