// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package output encodes generated values.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Writer encodes a list of values.
type Writer struct {
	Name      string
	Extension string
	encode    func(w io.Writer, values []any) error
}

var (
	// JSONWriter writes values as one indented JSON array.
	JSONWriter = Writer{"json", ".json", writeJSON}
	// JSONLWriter writes one compact JSON value per line.
	JSONLWriter = Writer{"jsonl", ".jsonl", writeJSONL}
	// YAMLWriter writes values as a YAML sequence.
	YAMLWriter = Writer{"yaml", ".yaml", writeYAML}
)

// Writers lists the available writers.
var Writers = []Writer{JSONWriter, JSONLWriter, YAMLWriter}

// ByName returns the writer for a format name.
func ByName(name string) (Writer, error) {
	for _, w := range Writers {
		if w.Name == strings.ToLower(name) {
			return w, nil
		}
	}
	return Writer{}, fmt.Errorf("unknown output format %q (want %s)", name, strings.Join(Names(), ", "))
}

// Names returns the format names of all writers.
func Names() []string {
	names := make([]string, len(Writers))
	for i, w := range Writers {
		names[i] = w.Name
	}
	return names
}

// Write encodes values to w.
func (wr Writer) Write(w io.Writer, values []any) error {
	if wr.encode == nil {
		return fmt.Errorf("output: writer has no encoder")
	}
	return wr.encode(w, values)
}

// WriteFile encodes values to the file at path, replacing it.
func (wr Writer) WriteFile(path string, values []any) error {
	f, err := os.Create(path) //nolint:gosec // path is from the command line
	if err != nil {
		return err
	}
	if err := wr.Write(f, values); err != nil {
		f.Close() //nolint:errcheck,gosec
		return err
	}
	return f.Close()
}

func writeJSON(w io.Writer, values []any) error {
	if values == nil {
		values = []any{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(values)
}

func writeJSONL(w io.Writer, values []any) error {
	enc := json.NewEncoder(w)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func writeYAML(w io.Writer, values []any) error {
	if values == nil {
		values = []any{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(values); err != nil {
		return err
	}
	return enc.Close()
}
