// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jschema provides JSON Schema loading, parsing, and traversal utilities.
package jschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"gopkg.in/yaml.v3"
)

// Schema is a JSON Schema node.
type Schema = jsonschema.Schema

// Format is the encoding of a schema file.
type Format int

const (
	// JSON is the default format.
	JSON Format = iota
	// YAML covers both .yaml and .yml files.
	YAML
)

// FormatFromPath returns the format implied by a file extension.
func FormatFromPath(p string) Format {
	if strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml") {
		return YAML
	}
	return JSON
}

// IsFileRef returns true if ref is an external file reference.
// File refs do not start with "#/".
func IsFileRef(ref string) bool {
	return ref != "" && !strings.HasPrefix(ref, "#")
}

// IsInternalRef returns true if ref points into the current document.
func IsInternalRef(ref string) bool {
	return strings.HasPrefix(ref, "#/")
}

// Parse decodes a schema in the given format. YAML is converted to JSON first
// so the schema's own JSON decoding applies to both.
func Parse(data []byte, format Format) (*Schema, error) {
	if format == YAML {
		var err error
		if data, err = yamlToJSON(data); err != nil {
			return nil, err
		}
	}
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode schema: %w", err)
	}
	return &s, nil
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	out, err := json.Marshal(stringKeys(v))
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML to JSON: %w", err)
	}
	return out, nil
}

// stringKeys rewrites map[any]any values decoded from YAML into map[string]any.
func stringKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, elem := range t {
			t[k] = stringKeys(elem)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, elem := range t {
			m[fmt.Sprint(k)] = stringKeys(elem)
		}
		return m
	case []any:
		for i, elem := range t {
			t[i] = stringKeys(elem)
		}
		return t
	}
	return v
}

// ExtractKeyOrder parses raw schema source and returns, for every schema that
// declares properties, the property names in source order. Keys are JSON
// pointers to the declaring schema ("" for the root).
func ExtractKeyOrder(data []byte, format Format) (map[string][]string, error) {
	var root any
	var err error
	if format == YAML {
		root, err = orderedYAML(data)
	} else {
		root, err = orderedJSON(json.NewDecoder(bytes.NewReader(data)))
	}
	if err != nil {
		return nil, err
	}
	result := make(map[string][]string)
	collectOrder(root, "", result)
	return result, nil
}

// orderedMap keeps mapping keys in source order.
type orderedMap struct {
	keys []string
	vals map[string]any
}

func orderedJSON(dec *json.Decoder) (any, error) {
	token, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}
	delim, ok := token.(json.Delim)
	if !ok {
		return token, nil
	}
	switch delim {
	case '{':
		m := &orderedMap{vals: make(map[string]any)}
		for dec.More() {
			keyToken, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("failed to read JSON: %w", err)
			}
			key, _ := keyToken.(string)
			val, err := orderedJSON(dec)
			if err != nil {
				return nil, err
			}
			m.keys = append(m.keys, key)
			m.vals[key] = val
		}
		if _, err := dec.Token(); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read JSON: %w", err)
		}
		return m, nil
	case '[':
		var list []any
		for dec.More() {
			val, err := orderedJSON(dec)
			if err != nil {
				return nil, err
			}
			list = append(list, val)
		}
		if _, err := dec.Token(); err != nil && err != io.EOF {
			return nil, fmt.Errorf("failed to read JSON: %w", err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("unexpected JSON delimiter %q", delim)
}

func orderedYAML(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return fromNode(&doc), nil
}

func fromNode(n *yaml.Node) any {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := &orderedMap{vals: make(map[string]any)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			m.keys = append(m.keys, key)
			m.vals[key] = fromNode(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			list = append(list, fromNode(c))
		}
		return list
	}
	return n.Value
}

// collectOrder walks the schema keywords that hold subschemas.
func collectOrder(node any, ptr string, result map[string][]string) {
	m, ok := node.(*orderedMap)
	if !ok {
		return
	}
	if props, ok := m.vals["properties"].(*orderedMap); ok {
		result[ptr] = props.keys
	}
	for _, kw := range namedKeywords {
		if named, ok := m.vals[kw].(*orderedMap); ok {
			for _, name := range named.keys {
				collectOrder(named.vals[name], ptr+"/"+kw+"/"+escape(name), result)
			}
		}
	}
	for _, kw := range listKeywords {
		if list, ok := m.vals[kw].([]any); ok {
			for i, elem := range list {
				collectOrder(elem, fmt.Sprintf("%s/%s/%d", ptr, kw, i), result)
			}
		}
	}
	for _, kw := range singleKeywords {
		collectOrder(m.vals[kw], ptr+"/"+kw, result)
	}
}

var (
	namedKeywords  = []string{"properties", "$defs", "definitions", "patternProperties", "dependentSchemas"}
	listKeywords   = []string{"allOf", "anyOf", "oneOf", "prefixItems"}
	singleKeywords = []string{"items", "additionalProperties", "not", "if", "then", "else", "contains"}
)

// escape encodes a JSON pointer reference token.
func escape(token string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(token)
}

func unescape(token string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
}
