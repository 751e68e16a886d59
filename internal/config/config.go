// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles autofuzz project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultCount is the number of values generated for a target without a count.
const DefaultCount = 10

// Config represents the autofuzz.yaml project configuration file.
type Config struct {
	Version    int               `yaml:"version"`
	Generation Generation        `yaml:"generation,omitempty"`
	Targets    map[string]Target `yaml:"targets,omitempty"`
}

// Target names a schema file to generate values for.
type Target struct {
	Schema string `yaml:"schema"`
	Count  int    `yaml:"count,omitempty"`
	Strict bool   `yaml:"strict,omitempty"`
}

// Generation holds the generation settings set in the project file. Unset
// fields keep their defaults.
type Generation struct {
	Seed               *string                     `yaml:"seed,omitempty"`
	IntegerNumbersOnly *bool                       `yaml:"integerNumbersOnly,omitempty"`
	NumberBounds       *genconfig.Range[float64]   `yaml:"numberBounds,omitempty"`
	StringLengthBounds *genconfig.Range[int]       `yaml:"stringLengthBounds,omitempty"`
	ArrayLengthBounds  *genconfig.Range[int]       `yaml:"arrayLengthBounds,omitempty"`
	DateBounds         *genconfig.Range[time.Time] `yaml:"dateBounds,omitempty"`
	BooleanTrueOdds    *float64                    `yaml:"booleanTrueOdds,omitempty"`
}

// Overrides returns one override per set field.
func (g Generation) Overrides() []genconfig.Override {
	var out []genconfig.Override
	if g.Seed != nil {
		out = append(out, genconfig.WithSeed(*g.Seed))
	}
	if g.IntegerNumbersOnly != nil {
		out = append(out, genconfig.WithIntegerNumbersOnly(*g.IntegerNumbersOnly))
	}
	if g.NumberBounds != nil {
		out = append(out, genconfig.WithNumberBounds(g.NumberBounds.Min, g.NumberBounds.Max))
	}
	if g.StringLengthBounds != nil {
		out = append(out, genconfig.WithStringLengthBounds(g.StringLengthBounds.Min, g.StringLengthBounds.Max))
	}
	if g.ArrayLengthBounds != nil {
		out = append(out, genconfig.WithArrayLengthBounds(g.ArrayLengthBounds.Min, g.ArrayLengthBounds.Max))
	}
	if g.DateBounds != nil {
		out = append(out, genconfig.WithDateBounds(g.DateBounds.Min, g.DateBounds.Max))
	}
	if g.BooleanTrueOdds != nil {
		out = append(out, genconfig.WithBooleanTrueOdds(*g.BooleanTrueOdds))
	}
	return out
}

// Apply returns base with the project settings applied.
func (g Generation) Apply(base genconfig.Config) genconfig.Config {
	return base.With(g.Overrides()...)
}

// Load reads a Config from a file path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return errors.New("unsupported config version")
	}
	if err := c.Generation.Apply(genconfig.Default()).Validate(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}
	for _, name := range c.TargetNames() {
		t := c.Targets[name]
		if t.Schema == "" {
			return fmt.Errorf("target %q: schema is required", name)
		}
		if t.Count < 0 {
			return fmt.Errorf("target %q: count must not be negative", name)
		}
	}
	return nil
}

// TargetNames returns the configured target names in sorted order.
func (c *Config) TargetNames() []string {
	names := make([]string, 0, len(c.Targets))
	for name := range c.Targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// CountOrDefault returns the target's count, or DefaultCount if unset.
func (t Target) CountOrDefault() int {
	if t.Count == 0 {
		return DefaultCount
	}
	return t.Count
}
