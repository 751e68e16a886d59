// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/dacolabs/autofuzz/internal/cmdctx"
	"github.com/dacolabs/autofuzz/internal/config"
	"github.com/dacolabs/autofuzz/internal/jschema"
	"github.com/dacolabs/autofuzz/internal/session"
	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/dacolabs/autofuzz/pkg/oracle/jsonschemaoracle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sourceOptions selects the schema a command works on.
type sourceOptions struct {
	schema string
	strict bool
}

func (o *sourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.schema, "schema", "", "Schema file to use instead of a configured target")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "Validate values against every schema keyword, not just kinds")
}

// source is a resolved schema together with its generation settings.
type source struct {
	name   string
	doc    *jschema.Document
	strict bool
	count  int
	gen    genconfig.Config
}

// resolveSource loads the schema named by --schema or by the target argument.
// Project generation settings apply in both cases when a project is loaded.
func resolveSource(cmd *cobra.Command, args []string, opts *sourceOptions, getenv func(string) string) (*source, error) {
	sess := cmdctx.FromCommand(cmd)

	src := &source{strict: opts.strict, count: config.DefaultCount, gen: genconfig.Default()}
	if sess != nil {
		src.gen = sess.Config.Generation.Apply(src.gen)
	}
	if seed := getenv(SeedEnv); seed != "" {
		src.gen = src.gen.With(genconfig.WithSeed(seed))
	}

	switch {
	case opts.schema != "" && len(args) > 0:
		return nil, errors.New("pass either a target name or --schema, not both")
	case opts.schema != "":
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		doc, err := session.LoadSchema(cwd, opts.schema)
		if err != nil {
			return nil, err
		}
		src.name, src.doc = opts.schema, doc
	case len(args) == 1:
		if sess == nil {
			return nil, session.ErrNotInitialized
		}
		target, err := sess.Target(args[0])
		if err != nil {
			return nil, err
		}
		doc, err := sess.LoadSchema(target.Schema)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", args[0], err)
		}
		src.name, src.doc = args[0], doc
		src.strict = src.strict || target.Strict
		src.count = target.CountOrDefault()
	default:
		return nil, errors.New("a target name or --schema is required")
	}
	return src, nil
}

// oracle builds the JSON Schema oracle for src.
func (s *source) oracle() (*jsonschemaoracle.Oracle, error) {
	var opts []jsonschemaoracle.Option
	if s.strict {
		opts = append(opts, jsonschemaoracle.WithStrict())
	}
	return jsonschemaoracle.New(s.doc, opts...)
}

// factoryOptions returns the factory options shared by derive and generate.
func (s *source) factoryOptions(logger *zap.Logger) []fuzzer.Option {
	return []fuzzer.Option{
		fuzzer.WithConfig(s.gen),
		fuzzer.WithLogger(logger.With(zap.String("target", s.name))),
	}
}
