// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package jsonschemaoracle is an oracle backed by a JSON Schema document.
//
// Candidates are checked for kind only: "type" selects the kind, strings
// with format "date" or "date-time" are dates, and "integer" is treated as
// number and rounded when the candidate is normalised. Properties are
// checked in source order and only required properties are demanded. Internal
// $refs are followed, allOf members must all hold, and anyOf or oneOf accept
// the candidate when any branch does.
//
// In strict mode the normalised candidate is also validated against the full
// schema, so keywords such as minimum or pattern are enforced. Their failures
// are not structured violations, so a factory cannot repair them.
package jsonschemaoracle

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dacolabs/autofuzz/internal/jschema"
	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/dacolabs/autofuzz/pkg/schema"
	"github.com/google/jsonschema-go/jsonschema"
)

// maxRefDepth bounds ref chains that do not descend into the candidate.
const maxRefDepth = 64

// ErrUnresolvedRef is returned when a $ref does not point into the document.
var ErrUnresolvedRef = errors.New("unresolved $ref")

// Option configures an Oracle.
type Option func(*Oracle)

// WithStrict enables validation of the normalised candidate against the
// whole schema.
func WithStrict() Option {
	return func(o *Oracle) {
		o.strict = true
	}
}

// Oracle checks candidates against a schema document.
type Oracle struct {
	doc      *jschema.Document
	strict   bool
	resolved *jsonschema.Resolved
}

// New returns an oracle for doc.
func New(doc *jschema.Document, opts ...Option) (*Oracle, error) {
	if doc == nil || doc.Schema == nil {
		return nil, errors.New("jsonschemaoracle: schema is required")
	}
	o := &Oracle{doc: doc}
	for _, opt := range opts {
		opt(o)
	}
	if o.strict {
		resolved, err := doc.Schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("jsonschemaoracle: resolve schema: %w", err)
		}
		o.resolved = resolved
	}
	return o, nil
}

// Fill returns a fill function whose result is the normalised candidate:
// dates become RFC 3339 strings ("2006-01-02" for format date) and integer
// fields are rounded.
func (o *Oracle) Fill() fuzzer.FillFunc[any] {
	return func(candidate any) (any, error) {
		if err := o.Check(candidate); err != nil {
			return nil, err
		}
		out := o.normalize(o.doc.Schema, candidate, 0)
		if o.strict {
			if err := o.resolved.Validate(out); err != nil {
				return nil, fmt.Errorf("jsonschemaoracle: %w", err)
			}
		}
		return out, nil
	}
}

// Check returns nil if candidate has the kinds the schema asks for, a
// *schema.Violation for the first mismatch, or another error if the schema
// itself cannot be followed.
func (o *Oracle) Check(candidate any) error {
	return o.check(o.doc.Schema, candidate, nil, 0)
}

func (o *Oracle) check(s *jsonschema.Schema, v any, path schema.Path, depth int) error {
	s, err := o.deref(s, depth)
	if err != nil || s == nil {
		return err
	}

	for _, sub := range s.AllOf {
		if err := o.check(sub, v, path, depth+1); err != nil {
			return err
		}
	}
	if err := o.checkAny(s.AnyOf, v, path, depth); err != nil {
		return err
	}
	if err := o.checkAny(s.OneOf, v, path, depth); err != nil {
		return err
	}

	switch kind := kindOf(s); kind {
	case "":
		return nil
	case schema.KindString:
		if _, ok := v.(string); !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
	case schema.KindNumber:
		if _, ok := v.(float64); !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
	case schema.KindBoolean:
		if _, ok := v.(bool); !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
	case schema.KindDate:
		if _, ok := v.(time.Time); !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
	case schema.KindArray:
		arr, ok := v.([]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
		for i, elem := range arr {
			if err := o.check(itemSchema(s, i), elem, path.Append(schema.Index(i)), 0); err != nil {
				return err
			}
		}
	case schema.KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(kind))
		}
		required := make(map[string]bool, len(s.Required))
		for _, name := range s.Required {
			required[name] = true
		}
		for _, name := range o.doc.PropertyNames(s) {
			value, ok := obj[name]
			if !ok {
				if required[name] {
					return schema.NewViolation(path, schema.Missing(name))
				}
				continue
			}
			if err := o.check(s.Properties[name], value, path.Append(schema.Prop(name)), 0); err != nil {
				return err
			}
		}
		// Required names without a property schema only need to be present.
		for _, name := range s.Required {
			if _, declared := s.Properties[name]; declared {
				continue
			}
			if _, ok := obj[name]; !ok {
				return schema.NewViolation(path, schema.Missing(name))
			}
		}
	default:
		return schema.NewViolation(path, schema.WrongType(kind))
	}
	return nil
}

// checkAny passes when branches is empty or any branch accepts v. Otherwise it
// reports the failure of the first branch that is not a bare null type.
func (o *Oracle) checkAny(branches []*jsonschema.Schema, v any, path schema.Path, depth int) error {
	var first, null error
	for _, sub := range branches {
		err := o.check(sub, v, path, depth+1)
		if err == nil {
			return nil
		}
		if sub != nil && sub.Type == "null" {
			if null == nil {
				null = err
			}
			continue
		}
		if first == nil {
			first = err
		}
	}
	if first == nil {
		return null
	}
	return first
}

func (o *Oracle) deref(s *jsonschema.Schema, depth int) (*jsonschema.Schema, error) {
	for s != nil && s.Ref != "" {
		if depth >= maxRefDepth {
			return nil, fmt.Errorf("jsonschemaoracle: %w: %q nests too deeply", ErrUnresolvedRef, s.Ref)
		}
		target := o.doc.Lookup(s.Ref)
		if target == nil {
			return nil, fmt.Errorf("jsonschemaoracle: %w: %q", ErrUnresolvedRef, s.Ref)
		}
		s = target
		depth++
	}
	return s, nil
}

// kindOf returns the schema kind a node demands, or "" when it demands none.
func kindOf(s *jsonschema.Schema) schema.Kind {
	typ := s.Type
	if typ == "" {
		for _, t := range s.Types {
			if t != "null" {
				typ = t
				break
			}
		}
	}
	switch typ {
	case "":
		switch {
		case len(s.Properties) > 0 || len(s.Required) > 0:
			return schema.KindObject
		case s.Items != nil || len(s.PrefixItems) > 0:
			return schema.KindArray
		}
		return ""
	case "string":
		if s.Format == "date" || s.Format == "date-time" {
			return schema.KindDate
		}
		return schema.KindString
	case "number", "integer":
		return schema.KindNumber
	}
	return schema.Kind(typ)
}

func itemSchema(s *jsonschema.Schema, i int) *jsonschema.Schema {
	if i < len(s.PrefixItems) {
		return s.PrefixItems[i]
	}
	return s.Items
}

// normalize converts a checked candidate into its JSON form.
func (o *Oracle) normalize(s *jsonschema.Schema, v any, depth int) any {
	s, err := o.deref(s, depth)
	if err != nil || s == nil {
		return jsonValue(v)
	}

	switch t := v.(type) {
	case time.Time:
		if o.format(s, depth) == "date" {
			return t.UTC().Format(time.DateOnly)
		}
		return t.UTC().Format(time.RFC3339Nano)
	case float64:
		if o.typeName(s, depth) == "integer" {
			return math.Round(t)
		}
		return t
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = o.normalize(o.member(s, depth, func(m *jsonschema.Schema) *jsonschema.Schema {
				return itemSchema(m, i)
			}), elem, 0)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for name, elem := range t {
			out[name] = o.normalize(o.member(s, depth, func(m *jsonschema.Schema) *jsonschema.Schema {
				return m.Properties[name]
			}), elem, 0)
		}
		return out
	}
	return v
}

// member returns the first subschema pick finds in s or its composed branches.
func (o *Oracle) member(s *jsonschema.Schema, depth int, pick func(*jsonschema.Schema) *jsonschema.Schema) *jsonschema.Schema {
	var found *jsonschema.Schema
	o.walk(s, depth, func(m *jsonschema.Schema) bool {
		found = pick(m)
		return found != nil
	})
	return found
}

func (o *Oracle) format(s *jsonschema.Schema, depth int) string {
	var f string
	o.walk(s, depth, func(m *jsonschema.Schema) bool {
		f = m.Format
		return f != ""
	})
	return f
}

func (o *Oracle) typeName(s *jsonschema.Schema, depth int) string {
	var typ string
	o.walk(s, depth, func(m *jsonschema.Schema) bool {
		typ = m.Type
		if typ == "" && len(m.Types) > 0 {
			typ = m.Types[0]
		}
		return typ != ""
	})
	return typ
}

// walk visits s and then its allOf, anyOf and oneOf branches depth first
// until visit returns true.
func (o *Oracle) walk(s *jsonschema.Schema, depth int, visit func(*jsonschema.Schema) bool) bool {
	s, err := o.deref(s, depth)
	if err != nil || s == nil || depth > maxRefDepth {
		return false
	}
	if visit(s) {
		return true
	}
	for _, group := range [][]*jsonschema.Schema{s.AllOf, s.AnyOf, s.OneOf} {
		for _, sub := range group {
			if o.walk(sub, depth+1, visit) {
				return true
			}
		}
	}
	return false
}

// jsonValue converts values outside any schema node.
func jsonValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = jsonValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for name, elem := range t {
			out[name] = jsonValue(elem)
		}
		return out
	}
	return v
}
