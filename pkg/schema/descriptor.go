// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package schema defines the type descriptors, field paths and oracle violations
// shared by schema derivation and value generation.
package schema

import (
	"slices"
	"strings"
)

// Kind names the type a descriptor generates, or the type an oracle requires.
// Kinds outside the known set are valid values; they mark types the generator
// cannot produce.
type Kind string

// Known kinds.
const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindDate    Kind = "date"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
)

// IsPrimitive reports whether k is a leaf kind.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindDate:
		return true
	}
	return false
}

// IsKnown reports whether k is a kind the generator understands.
func (k Kind) IsKnown() bool {
	return k.IsPrimitive() || k == KindArray || k == KindObject
}

// Descriptor describes which generator runs at a location of the target shape.
// Exactly one of Elem (arrays) or Fields (objects) is set for composite kinds.
type Descriptor struct {
	Kind   Kind                   `json:"kind" yaml:"kind"`
	Elem   *Descriptor            `json:"elem,omitempty" yaml:"elem,omitempty"`
	Fields map[string]*Descriptor `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Primitive returns a leaf descriptor of the given kind.
func Primitive(kind Kind) *Descriptor {
	return &Descriptor{Kind: kind}
}

// ArrayOf returns an array descriptor whose elements are generated by elem.
func ArrayOf(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: KindArray, Elem: elem}
}

// ObjectOf returns an object descriptor with the given fields.
// A nil map yields an object without fields.
func ObjectOf(fields map[string]*Descriptor) *Descriptor {
	if fields == nil {
		fields = make(map[string]*Descriptor)
	}
	return &Descriptor{Kind: KindObject, Fields: fields}
}

// FieldNames returns the object's field names in sorted order.
func (d *Descriptor) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for name := range d.Fields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Clone returns a deep copy of d.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := &Descriptor{Kind: d.Kind, Elem: d.Elem.Clone()}
	if d.Fields != nil {
		c.Fields = make(map[string]*Descriptor, len(d.Fields))
		for name, f := range d.Fields {
			c.Fields[name] = f.Clone()
		}
	}
	return c
}

// Lookup returns the descriptor at path, following array elements for index
// accessors. It returns nil when the path leaves the described shape.
func (d *Descriptor) Lookup(path Path) *Descriptor {
	cur := d
	for _, acc := range path {
		if cur == nil {
			return nil
		}
		if acc.IsIndex() {
			if cur.Kind != KindArray {
				return nil
			}
			cur = cur.Elem
			continue
		}
		if cur.Kind != KindObject {
			return nil
		}
		cur = cur.Fields[acc.Name]
	}
	return cur
}

// String renders d in a compact, human-readable notation such as
// {id: number, tags: string[]}. It is meant for messages only.
func (d *Descriptor) String() string {
	var b strings.Builder
	d.write(&b)
	return b.String()
}

func (d *Descriptor) write(b *strings.Builder) {
	if d == nil {
		b.WriteString("<nil>")
		return
	}
	switch d.Kind {
	case KindArray:
		if d.Elem != nil && d.Elem.Kind == KindObject {
			b.WriteString("Array<")
			d.Elem.write(b)
			b.WriteString(">")
			return
		}
		d.Elem.write(b)
		b.WriteString("[]")
	case KindObject:
		b.WriteString("{")
		for i, name := range d.FieldNames() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteString(": ")
			d.Fields[name].write(b)
		}
		b.WriteString("}")
	default:
		b.WriteString(string(d.Kind))
	}
}
