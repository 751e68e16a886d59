// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fuzzer

import (
	"errors"
	"fmt"

	"github.com/dacolabs/autofuzz/internal/derive"
	"github.com/dacolabs/autofuzz/internal/generate"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/dacolabs/autofuzz/pkg/schema"
	"go.uber.org/zap"
)

// FillFunc passes a candidate to an oracle. It returns the candidate narrowed
// to T, or an error wrapping a *schema.Violation describing the first problem.
type FillFunc[T any] func(candidate any) (T, error)

// Factory generates values of T from a schema derived once at construction.
type Factory[T any] struct {
	fill   FillFunc[T]
	cfg    genconfig.Config
	gen    *generate.Generator
	root   *schema.Descriptor
	logger *zap.Logger
}

// New derives the schema behind fill and returns a Factory for it.
// It fails if the configuration is invalid or derivation fails, in which case
// the error matches schema.ErrDerivationNonConvergent or schema.ErrUnsupportedType.
func New[T any](fill FillFunc[T], opts ...Option) (*Factory[T], error) {
	if fill == nil {
		return nil, errors.New("fuzzer: fill function is required")
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := genconfig.Default().With(o.overrides...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("fuzzer: %w", err)
	}

	gen := generate.New(generate.NewSource(cfg.RandomSeed))
	probe := func(candidate any) error {
		_, err := fill(candidate)
		return err
	}
	root, err := derive.New(probe, gen, cfg,
		derive.WithLogger(o.logger),
		derive.WithMaxRounds(o.maxRounds),
	).Derive()
	if err != nil {
		return nil, fmt.Errorf("fuzzer: derive schema: %w", err)
	}

	o.logger.Debug("factory ready",
		zap.String("seed", cfg.RandomSeed),
		zap.Stringer("schema", root))

	return &Factory[T]{
		fill:   fill,
		cfg:    cfg,
		gen:    gen,
		root:   root,
		logger: o.logger,
	}, nil
}

// Must panics if err is non-nil and returns f otherwise. It is meant for
// package-level test fixtures.
func Must[T any](f *Factory[T], err error) *Factory[T] {
	if err != nil {
		panic(err)
	}
	return f
}

// Generate returns one random value accepted by the oracle. Overrides apply to
// this call only. RandomSeed overrides are ignored here; use Reseed.
func (f *Factory[T]) Generate(overrides ...genconfig.Override) (T, error) {
	var zero T

	cfg := f.cfg.With(overrides...)
	if err := cfg.Validate(); err != nil {
		return zero, fmt.Errorf("fuzzer: %w", err)
	}

	candidate, err := f.gen.Value(f.root, cfg, nil)
	if err != nil {
		return zero, fmt.Errorf("fuzzer: generate: %w", err)
	}

	out, err := f.fill(candidate)
	if err != nil {
		f.logger.Debug("oracle rejected generated value", zap.Error(err))
		return zero, fmt.Errorf("fuzzer: oracle rejected generated value: %w", err)
	}
	return out, nil
}

// GenerateN returns n values generated with the same overrides.
func (f *Factory[T]) GenerateN(n int, overrides ...genconfig.Override) ([]T, error) {
	out := make([]T, 0, n)
	for i := range n {
		v, err := f.Generate(overrides...)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Reseed replaces the factory's random source with one seeded from seed.
// The derived schema is kept.
func (f *Factory[T]) Reseed(seed string) {
	f.gen = generate.New(generate.NewSource(seed))
	f.cfg = f.cfg.With(genconfig.WithSeed(seed))
}

// Schema returns a copy of the derived schema.
func (f *Factory[T]) Schema() *schema.Descriptor {
	return f.root.Clone()
}

// Config returns the construction-time configuration.
func (f *Factory[T]) Config() genconfig.Config {
	return f.cfg
}
