// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/dacolabs/autofuzz/internal/cmdctx"
	"github.com/dacolabs/autofuzz/internal/config"
	"github.com/dacolabs/autofuzz/internal/prompts"
	"github.com/dacolabs/autofuzz/internal/session"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTargetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "Manage generation targets",
	}

	cmd.AddCommand(newTargetsListCmd())
	cmd.AddCommand(newTargetsAddCmd())

	return cmd
}

type targetsListOptions struct {
	output string
}

func newTargetsListCmd() *cobra.Command {
	opts := &targetsListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the targets in autofuzz.yaml",
		Example: `  # List targets in table format
  autofuzz targets list

  # List targets as JSON
  autofuzz targets list -o json`,
		Args:    cobra.NoArgs,
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runTargetsList(cmd.OutOrStdout(), sess, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func runTargetsList(w io.Writer, sess *session.Context, opts *targetsListOptions) error {
	targets := sess.Config.Targets
	if len(targets) == 0 {
		_, err := fmt.Fprintln(w, "No targets defined.")
		return err
	}

	switch opts.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(targets)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(targets)
	default:
		return printTargetsTable(w, sess.Config)
	}
}

func printTargetsTable(out io.Writer, cfg *config.Config) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tSCHEMA\tCOUNT\tSTRICT")

	for _, name := range cfg.TargetNames() {
		t := cfg.Targets[name]
		strict := "-"
		if t.Strict {
			strict = "yes"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", name, t.Schema, t.CountOrDefault(), strict)
	}

	return w.Flush()
}

type targetsAddOptions struct {
	name           string
	schema         string
	count          int
	strict         bool
	nonInteractive bool
}

func newTargetsAddCmd() *cobra.Command {
	opts := &targetsAddOptions{}

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a target to autofuzz.yaml",
		Long: `Add a named schema file as a generation target. The schema is loaded
and checked before the target is saved.`,
		Example: `  # Interactive mode
  autofuzz targets add

  # Non-interactive
  autofuzz targets add users --schema schemas/user.yaml --count 50 --non-interactive`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: cmdctx.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cmdctx.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				opts.name = args[0]
			}
			return runTargetsAdd(cmd.OutOrStdout(), sess, opts)
		},
	}

	cmd.Flags().StringVar(&opts.schema, "schema", "", "Schema file, relative to the project")
	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "Values generated per run (default 10)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Validate values against every schema keyword")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires a name and --schema)")

	return cmd
}

func runTargetsAdd(w io.Writer, sess *session.Context, opts *targetsAddOptions) error {
	if opts.nonInteractive {
		if opts.name == "" || opts.schema == "" {
			return errors.New("non-interactive mode requires a target name and --schema")
		}
	} else {
		count := ""
		if opts.count > 0 {
			count = strconv.Itoa(opts.count)
		}
		if err := prompts.RunTargetAddForm(&opts.name, &opts.schema, &count, &opts.strict, sess.Config.Targets); err != nil {
			return err
		}
		if count != "" {
			n, err := strconv.Atoi(count)
			if err != nil {
				return fmt.Errorf("invalid count %q", count)
			}
			opts.count = n
		}
	}

	if err := prompts.IdentifierValidator(sess.Config.Targets)(opts.name); err != nil {
		return fmt.Errorf("invalid target name: %w", err)
	}
	if _, err := sess.LoadSchema(opts.schema); err != nil {
		return err
	}

	if sess.Config.Targets == nil {
		sess.Config.Targets = make(map[string]config.Target)
	}
	sess.Config.Targets[opts.name] = config.Target{
		Schema: filepath.ToSlash(opts.schema),
		Count:  opts.count,
		Strict: opts.strict,
	}
	if err := sess.Config.Validate(); err != nil {
		delete(sess.Config.Targets, opts.name)
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := sess.Config.Save(filepath.Join(sess.Dir, session.ConfigFileName)); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult(w, []prompts.ResultField{
		{Label: "Target", Value: opts.name},
		{Label: "Schema", Value: opts.schema},
	}, "Target added")
	return nil
}
