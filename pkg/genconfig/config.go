// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package genconfig holds the bounds and seed that drive random value generation.
package genconfig

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig indicates bounds or probabilities that cannot be sampled.
var ErrInvalidConfig = errors.New("invalid generation config")

// DefaultSeed is the seed used when none is configured, so that runs are
// reproducible by default.
const DefaultSeed = "autofuzz"

// MaxSafeInteger is the largest integer n such that n and n+1 are both exactly
// representable as float64.
const MaxSafeInteger = 1<<53 - 1

// Range is an inclusive [Min, Max] interval.
type Range[T any] struct {
	Min T `yaml:"min" json:"min"`
	Max T `yaml:"max" json:"max"`
}

// Config is the immutable set of knobs for one generation call. Values are
// passed by value; use With to derive a modified copy.
type Config struct {
	RandomSeed         string           `yaml:"randomSeed" json:"randomSeed"`
	IntegerNumbersOnly bool             `yaml:"integerNumbersOnly" json:"integerNumbersOnly"`
	NumberBounds       Range[float64]   `yaml:"numberBounds" json:"numberBounds"`
	StringLengthBounds Range[int]       `yaml:"stringLengthBounds" json:"stringLengthBounds"`
	ArrayLengthBounds  Range[int]       `yaml:"arrayLengthBounds" json:"arrayLengthBounds"`
	DateBounds         Range[time.Time] `yaml:"dateBounds" json:"dateBounds"`
	BooleanTrueOdds    float64          `yaml:"booleanTrueOdds" json:"booleanTrueOdds"`
}

// Default returns the default configuration, with dates bounded by the Unix
// epoch and one year from now.
func Default() Config {
	return DefaultAt(time.Now())
}

// DefaultAt returns the default configuration relative to now.
func DefaultAt(now time.Time) Config {
	return Config{
		RandomSeed:         DefaultSeed,
		IntegerNumbersOnly: false,
		NumberBounds:       Range[float64]{Min: -MaxSafeInteger, Max: MaxSafeInteger},
		StringLengthBounds: Range[int]{Min: 0, Max: 1024},
		ArrayLengthBounds:  Range[int]{Min: 0, Max: 101},
		DateBounds:         Range[time.Time]{Min: time.Unix(0, 0).UTC(), Max: now.AddDate(1, 0, 0).UTC()},
		BooleanTrueOdds:    0.5,
	}
}

// DerivationProfile returns the restrictive configuration used while probing
// an oracle: strings and arrays have exactly one element and numbers are
// integral. The seed, number range, dates and odds are taken from c.
func DerivationProfile(c Config) Config {
	p := c
	p.IntegerNumbersOnly = true
	p.StringLengthBounds = Range[int]{Min: 1, Max: 1}
	p.ArrayLengthBounds = Range[int]{Min: 1, Max: 1}
	if math.Ceil(p.NumberBounds.Min) > math.Floor(p.NumberBounds.Max) {
		p.IntegerNumbersOnly = false
	}
	return p
}

// With returns a copy of c with the overrides applied in order.
func (c Config) With(overrides ...Override) Config {
	for _, o := range overrides {
		if o != nil {
			o(&c)
		}
	}
	return c
}

// Validate checks that every range can be sampled.
func (c Config) Validate() error {
	nb := c.NumberBounds
	switch {
	case math.IsNaN(nb.Min) || math.IsNaN(nb.Max) || math.IsInf(nb.Min, 0) || math.IsInf(nb.Max, 0):
		return fmt.Errorf("%w: number bounds must be finite", ErrInvalidConfig)
	case nb.Min > nb.Max:
		return fmt.Errorf("%w: number bounds min %v exceeds max %v", ErrInvalidConfig, nb.Min, nb.Max)
	case c.IntegerNumbersOnly && math.Ceil(nb.Min) > math.Floor(nb.Max):
		return fmt.Errorf("%w: no integer between %v and %v", ErrInvalidConfig, nb.Min, nb.Max)
	}
	if err := validateLength("string length", c.StringLengthBounds); err != nil {
		return err
	}
	if err := validateLength("array length", c.ArrayLengthBounds); err != nil {
		return err
	}
	if c.DateBounds.Min.After(c.DateBounds.Max) {
		return fmt.Errorf("%w: date bounds min %s is after max %s", ErrInvalidConfig,
			c.DateBounds.Min.Format(time.RFC3339), c.DateBounds.Max.Format(time.RFC3339))
	}
	if math.IsNaN(c.BooleanTrueOdds) || c.BooleanTrueOdds < 0 || c.BooleanTrueOdds > 1 {
		return fmt.Errorf("%w: boolean true odds %v outside [0,1]", ErrInvalidConfig, c.BooleanTrueOdds)
	}
	return nil
}

func validateLength(name string, r Range[int]) error {
	if r.Min < 0 {
		return fmt.Errorf("%w: %s min %d is negative", ErrInvalidConfig, name, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: %s min %d exceeds max %d", ErrInvalidConfig, name, r.Min, r.Max)
	}
	return nil
}
