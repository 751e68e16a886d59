// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fuzzer

import (
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"go.uber.org/zap"
)

// Option customizes factory construction.
type Option func(*options)

type options struct {
	overrides []genconfig.Override
	logger    *zap.Logger
	maxRounds int
}

// WithConfig sets the base configuration, replacing the defaults.
func WithConfig(c genconfig.Config) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, genconfig.WithConfig(c))
	}
}

// WithOverrides applies overrides on top of the base configuration.
func WithOverrides(overrides ...genconfig.Override) Option {
	return func(o *options) {
		o.overrides = append(o.overrides, overrides...)
	}
}

// WithLogger traces derivation and generation through l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMaxDerivationRounds caps the number of oracle probes made while deriving
// the schema.
func WithMaxDerivationRounds(n int) Option {
	return func(o *options) {
		o.maxRounds = n
	}
}
