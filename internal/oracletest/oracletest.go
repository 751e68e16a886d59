// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package oracletest provides a strict in-memory oracle driven by a known
// descriptor, for testing derivation and factories.
package oracletest

import (
	"time"

	"github.com/dacolabs/autofuzz/pkg/schema"
)

// Oracle checks candidates against a descriptor and counts the calls it gets.
type Oracle struct {
	want  *schema.Descriptor
	Calls int
}

// New returns an oracle for the shape described by want.
func New(want *schema.Descriptor) *Oracle {
	return &Oracle{want: want}
}

// Check returns nil if candidate conforms, or the first *schema.Violation
// found visiting object fields in sorted order.
func (o *Oracle) Check(candidate any) error {
	o.Calls++
	if v := check(o.want, candidate, nil); v != nil {
		return v
	}
	return nil
}

// Fill checks candidate and returns it unchanged when it conforms.
func (o *Oracle) Fill(candidate any) (any, error) {
	if err := o.Check(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}

func check(d *schema.Descriptor, v any, path schema.Path) *schema.Violation {
	switch d.Kind {
	case schema.KindString:
		if _, ok := v.(string); !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
	case schema.KindNumber:
		if _, ok := v.(float64); !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
	case schema.KindBoolean:
		if _, ok := v.(bool); !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
	case schema.KindDate:
		if _, ok := v.(time.Time); !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
	case schema.KindArray:
		arr, ok := v.([]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
		for i, elem := range arr {
			if viol := check(d.Elem, elem, path.Append(schema.Index(i))); viol != nil {
				return viol
			}
		}
	case schema.KindObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(d.Kind))
		}
		for _, name := range d.FieldNames() {
			field, ok := obj[name]
			if !ok {
				return schema.NewViolation(path, schema.Missing(name))
			}
			if viol := check(d.Fields[name], field, path.Append(schema.Prop(name))); viol != nil {
				return viol
			}
		}
	default:
		// Kinds the generator cannot produce are never satisfied.
		return schema.NewViolation(path, schema.WrongType(d.Kind))
	}
	return nil
}
