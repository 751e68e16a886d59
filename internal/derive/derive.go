// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package derive recovers a target shape's schema by probing an oracle and
// repairing one reported violation per round until the oracle accepts.
package derive

import (
	"errors"
	"fmt"

	"github.com/dacolabs/autofuzz/internal/generate"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/dacolabs/autofuzz/pkg/schema"
	"go.uber.org/zap"
)

// DefaultMaxRounds bounds the number of oracle probes per derivation.
const DefaultMaxRounds = 10_000

// ProbeFunc submits a candidate to the oracle. It returns nil when the
// candidate is accepted, or an error wrapping a *schema.Violation.
type ProbeFunc func(candidate any) error

// Option configures an Engine.
type Option func(*Engine)

// WithMaxRounds sets the probe cap. Values below one are ignored.
func WithMaxRounds(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxRounds = n
		}
	}
}

// WithLogger sets the logger used to trace each round.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine runs schema derivation against one oracle.
type Engine struct {
	probe     ProbeFunc
	gen       *generate.Generator
	cfg       genconfig.Config
	maxRounds int
	logger    *zap.Logger
}

// New returns an Engine that fills probe values with gen under the derivation
// profile of cfg.
func New(probe ProbeFunc, gen *generate.Generator, cfg genconfig.Config, opts ...Option) *Engine {
	e := &Engine{
		probe:     probe,
		gen:       gen,
		cfg:       genconfig.DerivationProfile(cfg),
		maxRounds: DefaultMaxRounds,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Derive probes the oracle until it accepts and returns the schema of the
// target shape. The result is a primitive descriptor for bare primitive
// targets, and an object or array descriptor otherwise.
//
// Derive fails with schema.ErrDerivationNonConvergent when a violation repeats
// or the round cap is hit, and with schema.ErrUnsupportedType when the oracle
// requires a kind the generator cannot produce or fails without a violation.
func (e *Engine) Derive() (*schema.Descriptor, error) {
	s := &state{
		root:  schema.ObjectOf(nil),
		value: map[string]any{},
		empty: true,
		seen:  make(map[schema.Signature]struct{}),
	}

	for round := 1; round <= e.maxRounds; round++ {
		err := e.probe(s.value)
		if err == nil {
			e.logger.Debug("schema derived",
				zap.Int("rounds", round),
				zap.Stringer("schema", s.root))
			return s.root, nil
		}

		var v *schema.Violation
		if !errors.As(err, &v) {
			return nil, schema.ContractViolation(s.lastPath, s.lastKind, err)
		}
		e.logger.Debug("probe rejected",
			zap.Int("round", round),
			zap.Stringer("path", v.Path),
			zap.Stringer("reason", v.Reason))

		sig := v.Signature()
		if _, ok := s.seen[sig]; ok {
			path, kind := target(v)
			return nil, schema.NonConvergent(path, kind,
				fmt.Sprintf("oracle repeated %q after it was repaired", v.Error()))
		}
		s.seen[sig] = struct{}{}

		done, err := e.repair(s, v)
		if err != nil {
			return nil, err
		}
		if done {
			e.logger.Debug("primitive target derived",
				zap.Int("rounds", round),
				zap.Stringer("schema", s.root))
			return s.root, nil
		}
	}

	return nil, schema.NonConvergent(s.lastPath, s.lastKind,
		fmt.Sprintf("oracle still rejecting after %d rounds", e.maxRounds))
}

// repair applies the fix for v. It reports done when the target turned out to
// be a bare primitive.
func (e *Engine) repair(s *state, v *schema.Violation) (bool, error) {
	path, kind := target(v)
	s.lastPath, s.lastKind = path, kind

	if v.Reason.IsMissing() {
		// Every new field starts as a number; a wrong-type report corrects it.
		return false, e.assign(s, path, schema.Primitive(schema.KindNumber))
	}

	if !kind.IsKnown() {
		return false, schema.Unsupported(path, kind)
	}

	if s.empty && kind.IsPrimitive() {
		s.root = schema.Primitive(kind)
		return true, nil
	}

	if path.IsElement() {
		return false, e.assign(s, path.Parent(), schema.ArrayOf(shapeOf(kind)))
	}
	return false, e.assign(s, path, shapeOf(kind))
}

// assign records d at path in the schema and writes a freshly generated value
// for it into the probe.
func (e *Engine) assign(s *state, path schema.Path, d *schema.Descriptor) error {
	value, err := e.gen.Value(d, e.cfg, path)
	if err != nil {
		return err
	}

	if path.IsRoot() {
		s.root, s.value, s.empty = d, value, false
		return nil
	}

	parent := s.root.Lookup(path.Parent())
	last := path[len(path)-1]
	switch {
	case last.IsIndex() && parent != nil && parent.Kind == schema.KindArray:
		parent.Elem = d
	case !last.IsIndex() && parent != nil && parent.Kind == schema.KindObject:
		parent.Fields[last.Name] = d
	default:
		return schema.ContractViolation(path, d.Kind,
			fmt.Errorf("violation reported outside the derived shape %s", s.root))
	}

	if err := setValue(s.value, path, value); err != nil {
		return schema.ContractViolation(path, d.Kind, err)
	}
	s.empty = false
	return nil
}

// target returns the absolute path and kind a violation is about.
func target(v *schema.Violation) (schema.Path, schema.Kind) {
	if v.Reason.IsMissing() {
		return v.Path.Append(schema.Prop(v.Reason.Property)), schema.KindNumber
	}
	return v.Path, v.Reason.Required()
}

// shapeOf returns the initial descriptor for a required kind. Array elements
// start as numbers and objects start empty; later violations refine both.
func shapeOf(kind schema.Kind) *schema.Descriptor {
	switch kind {
	case schema.KindArray:
		return schema.ArrayOf(schema.Primitive(schema.KindNumber))
	case schema.KindObject:
		return schema.ObjectOf(nil)
	default:
		return schema.Primitive(kind)
	}
}

type state struct {
	root  *schema.Descriptor
	value any
	empty bool
	seen  map[schema.Signature]struct{}

	lastPath schema.Path
	lastKind schema.Kind
}
