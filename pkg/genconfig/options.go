// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package genconfig

import "time"

// Override changes one or more fields of a Config copy. Overrides are applied
// in order; later ones win.
type Override func(*Config)

// WithConfig replaces every field with the values of c.
func WithConfig(c Config) Override {
	return func(dst *Config) { *dst = c }
}

// WithSeed sets the random seed.
func WithSeed(seed string) Override {
	return func(c *Config) { c.RandomSeed = seed }
}

// WithIntegerNumbersOnly rounds generated numbers to integers when on is true.
func WithIntegerNumbersOnly(on bool) Override {
	return func(c *Config) { c.IntegerNumbersOnly = on }
}

// WithNumberBounds sets the inclusive range of generated numbers.
func WithNumberBounds(minValue, maxValue float64) Override {
	return func(c *Config) { c.NumberBounds = Range[float64]{Min: minValue, Max: maxValue} }
}

// WithStringLengthBounds sets the inclusive range of generated string lengths.
func WithStringLengthBounds(minLen, maxLen int) Override {
	return func(c *Config) { c.StringLengthBounds = Range[int]{Min: minLen, Max: maxLen} }
}

// WithArrayLengthBounds sets the inclusive range of generated array lengths.
func WithArrayLengthBounds(minLen, maxLen int) Override {
	return func(c *Config) { c.ArrayLengthBounds = Range[int]{Min: minLen, Max: maxLen} }
}

// WithDateBounds sets the inclusive range of generated dates.
func WithDateBounds(minDate, maxDate time.Time) Override {
	return func(c *Config) { c.DateBounds = Range[time.Time]{Min: minDate, Max: maxDate} }
}

// WithBooleanTrueOdds sets the probability that a generated boolean is true.
func WithBooleanTrueOdds(p float64) Override {
	return func(c *Config) { c.BooleanTrueOdds = p }
}
