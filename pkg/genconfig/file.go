// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package genconfig

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode reads a YAML document from r on top of base. Keys absent from the
// document keep the value they have in base.
func Decode(r io.Reader, base Config) (Config, error) {
	cfg := base
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes c to w as YAML.
func Encode(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

// Load reads a Config file over base.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return Config{}, err
	}
	defer f.Close() //nolint:errcheck

	return Decode(f, base)
}

// Save writes the Config to a file path.
func (c Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	return Encode(f, c)
}
