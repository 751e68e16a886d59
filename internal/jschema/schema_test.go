// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema_test

import (
	"testing"

	"github.com/dacolabs/autofuzz/internal/jschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want jschema.Format
	}{
		{"yaml extension", "schema.yaml", jschema.YAML},
		{"yml extension", "schema.yml", jschema.YAML},
		{"json extension", "schema.json", jschema.JSON},
		{"no extension", "schema", jschema.JSON},
		{"path with yaml", "/path/to/schema.yaml", jschema.YAML},
		{"path with json", "/path/to/schema.json", jschema.JSON},
		{"empty string", "", jschema.JSON},
		{"uppercase YAML", "schema.YAML", jschema.JSON}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jschema.FormatFromPath(tt.path)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsFileRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"relative file ref", "./other.yaml", true},
		{"parent file ref", "../other.yaml", true},
		{"simple file ref", "other.yaml", true},
		{"file ref with fragment", "other.yaml#/$defs/x", true},
		{"internal ref", "#/$defs/address", false},
		{"root ref", "#", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jschema.IsFileRef(tt.ref)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInternalRef(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"defs ref", "#/$defs/address", true},
		{"definitions ref", "#/definitions/item", true},
		{"file ref", "./other.yaml", false},
		{"empty string", "", false},
		{"hash only", "#/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jschema.IsInternalRef(tt.ref)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractKeyOrder(t *testing.T) {
	yamlSrc := []byte(`
type: object
properties:
  b: {type: string}
  a:
    type: object
    properties:
      y: {type: number}
      x: {type: number}
  c:
    type: array
    items:
      type: object
      properties:
        k2: {type: string}
        k1: {type: string}
$defs:
  thing:
    properties:
      z: {}
      m: {}
`)
	jsonSrc := []byte(`{
  "type": "object",
  "properties": {
    "b": {"type": "string"},
    "a": {"type": "object", "properties": {"y": {}, "x": {}}},
    "c": {"type": "array", "items": {"properties": {"k2": {}, "k1": {}}}}
  },
  "$defs": {"thing": {"properties": {"z": {}, "m": {}}}}
}`)

	want := map[string][]string{
		"":                    {"b", "a", "c"},
		"/properties/a":       {"y", "x"},
		"/properties/c/items": {"k2", "k1"},
		"/$defs/thing":        {"z", "m"},
	}

	got, err := jschema.ExtractKeyOrder(yamlSrc, jschema.YAML)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = jschema.ExtractKeyOrder(jsonSrc, jschema.JSON)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_YAMLMatchesJSON(t *testing.T) {
	fromYAML, err := jschema.Parse([]byte("type: object\nproperties:\n  id:\n    type: integer\nrequired: [id]\n"), jschema.YAML)
	require.NoError(t, err)
	fromJSON, err := jschema.Parse([]byte(`{"type":"object","properties":{"id":{"type":"integer"}},"required":["id"]}`), jschema.JSON)
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Type, fromYAML.Type)
	assert.Equal(t, fromJSON.Required, fromYAML.Required)
	assert.Equal(t, "integer", fromYAML.Properties["id"].Type)
}

func TestDocument_Lookup(t *testing.T) {
	doc, err := jschema.NewDocument([]byte(`
$defs:
  user:
    type: object
    properties:
      tags:
        type: array
        items:
          type: string
definitions:
  legacy:
    type: string
`), jschema.YAML)
	require.NoError(t, err)

	assert.Same(t, doc.Schema, doc.Lookup("#"))
	assert.Equal(t, "object", doc.Lookup("#/$defs/user").Type)
	assert.Equal(t, "string", doc.Lookup("#/$defs/user/properties/tags/items").Type)
	assert.Equal(t, "string", doc.Lookup("#/definitions/legacy").Type)
	assert.Nil(t, doc.Lookup("#/$defs/missing"))
	assert.Nil(t, doc.Lookup("#/components/schemas/User"))
	assert.Nil(t, doc.Lookup("other.yaml"))
}
