// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package jschema

import (
	"fmt"
	"slices"
	"strings"
)

// Document is a parsed schema together with the source order of its
// properties.
type Document struct {
	Schema *Schema
	order  map[*Schema][]string
}

// NewDocument parses data and records its property order.
func NewDocument(data []byte, format Format) (*Document, error) {
	s, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	keyOrder, err := ExtractKeyOrder(data, format)
	if err != nil {
		return nil, err
	}
	d := &Document{Schema: s, order: make(map[*Schema][]string)}
	d.bindOrder(s, "", keyOrder)
	return d, nil
}

func (d *Document) bindOrder(s *Schema, ptr string, keyOrder map[string][]string) {
	if s == nil {
		return
	}
	if keys, ok := keyOrder[ptr]; ok {
		d.order[s] = keys
	}
	for name, sub := range s.Properties {
		d.bindOrder(sub, ptr+"/properties/"+escape(name), keyOrder)
	}
	for name, sub := range s.Defs {
		d.bindOrder(sub, ptr+"/$defs/"+escape(name), keyOrder)
	}
	for name, sub := range s.Definitions {
		d.bindOrder(sub, ptr+"/definitions/"+escape(name), keyOrder)
	}
	for name, sub := range s.PatternProperties {
		d.bindOrder(sub, ptr+"/patternProperties/"+escape(name), keyOrder)
	}
	for name, sub := range s.DependentSchemas {
		d.bindOrder(sub, ptr+"/dependentSchemas/"+escape(name), keyOrder)
	}
	for i, sub := range s.AllOf {
		d.bindOrder(sub, fmt.Sprintf("%s/allOf/%d", ptr, i), keyOrder)
	}
	for i, sub := range s.AnyOf {
		d.bindOrder(sub, fmt.Sprintf("%s/anyOf/%d", ptr, i), keyOrder)
	}
	for i, sub := range s.OneOf {
		d.bindOrder(sub, fmt.Sprintf("%s/oneOf/%d", ptr, i), keyOrder)
	}
	for i, sub := range s.PrefixItems {
		d.bindOrder(sub, fmt.Sprintf("%s/prefixItems/%d", ptr, i), keyOrder)
	}
	d.bindOrder(s.Items, ptr+"/items", keyOrder)
	d.bindOrder(s.AdditionalProperties, ptr+"/additionalProperties", keyOrder)
	d.bindOrder(s.Not, ptr+"/not", keyOrder)
	d.bindOrder(s.If, ptr+"/if", keyOrder)
	d.bindOrder(s.Then, ptr+"/then", keyOrder)
	d.bindOrder(s.Else, ptr+"/else", keyOrder)
	d.bindOrder(s.Contains, ptr+"/contains", keyOrder)
}

// PropertyNames returns the property names of s in source order. Names
// without a recorded position follow in sorted order.
func (d *Document) PropertyNames(s *Schema) []string {
	names := make([]string, 0, len(s.Properties))
	seen := make(map[string]bool, len(s.Properties))
	for _, name := range d.order[s] {
		if _, ok := s.Properties[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// Lookup resolves an internal ref ("#", "#/$defs/name" or
// "#/definitions/name", possibly nested) against the document root.
// It returns nil if the ref does not resolve.
func (d *Document) Lookup(ref string) *Schema {
	if ref == "#" || ref == "#/" {
		return d.Schema
	}
	if !IsInternalRef(ref) {
		return nil
	}
	s := d.Schema
	tokens := strings.Split(strings.TrimPrefix(ref, "#/"), "/")
	for i := 0; i < len(tokens); i++ {
		if s == nil {
			return nil
		}
		kw := tokens[i]
		if kw == "items" {
			s = s.Items
			continue
		}
		if i+1 >= len(tokens) {
			return nil
		}
		i++
		name := unescape(tokens[i])
		switch kw {
		case "$defs":
			s = s.Defs[name]
		case "definitions":
			s = s.Definitions[name]
		case "properties":
			s = s.Properties[name]
		default:
			return nil
		}
	}
	return s
}

// merge adopts the property order recorded by other.
func (d *Document) merge(other *Document) {
	for s, keys := range other.order {
		d.order[s] = keys
	}
}
