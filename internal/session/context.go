// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dacolabs/autofuzz/internal/config"
	"github.com/dacolabs/autofuzz/internal/jschema"
)

var (
	// ErrNotInitialized indicates no autofuzz.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in an autofuzz project (autofuzz.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnknownTarget indicates a target name that is not in the config.
	ErrUnknownTarget = errors.New("unknown target")

	// ErrSchemaNotFound indicates the schema file referenced by a target doesn't exist.
	ErrSchemaNotFound = errors.New("schema file not found")

	// ErrInvalidSchema indicates the schema file exists but couldn't be parsed.
	ErrInvalidSchema = errors.New("invalid schema")
)

// ConfigFileName is the name of the autofuzz configuration file.
const ConfigFileName = "autofuzz.yaml"

// contextKey is used to store Context in context.Context.
type contextKey struct{}

// Context holds the loaded project configuration.
type Context struct {
	// Config is the validated project configuration.
	Config *config.Config

	// Dir is the project root; target schema paths are relative to it.
	Dir string
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	configPath := filepath.Join(cwd, ConfigFileName)
	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	return With(ctx, &Context{Config: cfg, Dir: cwd}), nil
}

// With returns a copy of ctx carrying c.
func With(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// From extracts the Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if c, ok := ctx.Value(contextKey{}).(*Context); ok {
		return c
	}
	return nil
}

// Target returns the named target.
func (c *Context) Target(name string) (config.Target, error) {
	t, ok := c.Config.Targets[name]
	if !ok {
		return config.Target{}, fmt.Errorf("%w: %q", ErrUnknownTarget, name)
	}
	return t, nil
}

// LoadSchema loads a schema file relative to the project root, with its
// external refs resolved.
func (c *Context) LoadSchema(schemaPath string) (*jschema.Document, error) {
	return LoadSchema(c.Dir, schemaPath)
}

// LoadSchema loads a schema file relative to dir, with its external refs
// resolved.
func LoadSchema(dir, schemaPath string) (*jschema.Document, error) {
	full := schemaPath
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, full)
	}
	if _, err := os.Stat(full); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaNotFound, err)
	}

	// Root the loader at the project so refs may reach sibling directories.
	root, name := filepath.Dir(full), filepath.Base(full)
	if rel, err := filepath.Rel(dir, full); err == nil && filepath.IsLocal(rel) {
		root, name = dir, rel
	}

	doc, err := jschema.NewLoader(os.DirFS(root)).Load(filepath.ToSlash(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return doc, nil
}
