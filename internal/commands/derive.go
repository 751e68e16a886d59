// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dacolabs/autofuzz/internal/cmdctx"
	"github.com/dacolabs/autofuzz/internal/render"
	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type deriveOptions struct {
	source sourceOptions
	output string
	pkg    string
}

func newDeriveCmd(root *rootOptions) *cobra.Command {
	opts := &deriveOptions{}

	cmd := &cobra.Command{
		Use:   "derive [target]",
		Short: "Show the schema derived for a target",
		Long: `Probe the target's oracle until it accepts a value and print the shape
that was learned from its rejections.`,
		Example: `  # Derive a configured target
  autofuzz derive users

  # Derive from a schema file, as a one-line summary
  autofuzz derive --schema schemas/order.json -o text

  # Derive Go types for a target
  autofuzz derive users -o go --package fixtures > users.go`,
		Args:    cobra.MaximumNArgs(1),
		PreRunE: cmdctx.PreRunLoadOptional,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, args, root, opts)
		},
	}

	opts.source.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "Output format (yaml, json, text, go)")
	cmd.Flags().StringVar(&opts.pkg, "package", "fixtures", "Package name for -o go")

	return cmd
}

func runDerive(cmd *cobra.Command, args []string, root *rootOptions, opts *deriveOptions) error {
	src, err := resolveSource(cmd, args, &opts.source, root.getenv)
	if err != nil {
		return err
	}
	oracle, err := src.oracle()
	if err != nil {
		return err
	}
	f, err := fuzzer.New(oracle.Fill(), src.factoryOptions(root.log())...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case "text":
		_, err = fmt.Fprintln(out, f.Schema())
		return err
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(f.Schema())
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer func() { _ = enc.Close() }()
		return enc.Encode(f.Schema())
	case "go":
		code, err := render.GoTypes(opts.pkg, typeName(src.name), f.Schema())
		if err != nil {
			return err
		}
		_, err = out.Write(code)
		return err
	default:
		return fmt.Errorf("unknown output format %q (want yaml, json, text, go)", opts.output)
	}
}

// typeName turns a target name or schema path into a root type name.
func typeName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
