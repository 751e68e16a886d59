// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"strconv"
	"strings"
	"unicode"
)

// Accessor is a single step in a Path: a property name or an array index.
type Accessor struct {
	Name  string
	Index int
	index bool
}

// Prop returns a property accessor.
func Prop(name string) Accessor {
	return Accessor{Name: name}
}

// Index returns an array index accessor.
func Index(i int) Accessor {
	return Accessor{Index: i, index: true}
}

// IsIndex reports whether a addresses an array element.
func (a Accessor) IsIndex() bool {
	return a.index
}

// Path identifies a location inside a target shape, starting at the root.
// The empty path is the root itself.
type Path []Accessor

// ParsePath builds a path from property names and int indexes.
// Values of any other type are ignored.
func ParsePath(steps ...any) Path {
	p := make(Path, 0, len(steps))
	for _, s := range steps {
		switch v := s.(type) {
		case string:
			p = append(p, Prop(v))
		case int:
			p = append(p, Index(v))
		}
	}
	return p
}

// Append returns a new path with acc added; p is left untouched.
func (p Path) Append(acc ...Accessor) Path {
	out := make(Path, 0, len(p)+len(acc))
	out = append(out, p...)
	return append(out, acc...)
}

// IsRoot reports whether p addresses the root.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// IsElement reports whether p ends in an index accessor.
func (p Path) IsElement() bool {
	return len(p) > 0 && p[len(p)-1].IsIndex()
}

// Parent returns p without its last accessor. The root is its own parent.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// String renders the path as $.nestedObj.key1[2]; names that are not plain
// identifiers are quoted, as in $["first name"].
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("$")
	for _, acc := range p {
		switch {
		case acc.IsIndex():
			b.WriteString("[")
			b.WriteString(strconv.Itoa(acc.Index))
			b.WriteString("]")
		case isIdentifier(acc.Name):
			b.WriteString(".")
			b.WriteString(acc.Name)
		default:
			b.WriteString("[")
			b.WriteString(strconv.Quote(acc.Name))
			b.WriteString("]")
		}
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' && r != '$' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '$' {
			return false
		}
	}
	return true
}
