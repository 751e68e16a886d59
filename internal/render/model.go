// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package render turns derived descriptors into source code declarations.
package render

import (
	"strconv"
	"strings"

	"github.com/dacolabs/autofuzz/pkg/schema"
)

// SchemaData is the complete input passed to a render template.
type SchemaData struct {
	Package   string
	Defs      []TypeDef // nested types before the types that use them, root last
	NeedsTime bool
}

// TypeDef is a named type: a struct when Fields is set, otherwise a
// definition of Underlying.
type TypeDef struct {
	Name       string
	Underlying string
	Fields     []Field
}

// Field is a single struct field.
type Field struct {
	Name string // Go identifier
	Type string
	Tag  string // e.g. `json:"name"`
}

// prepareContext holds mutable state while a descriptor is walked.
type prepareContext struct {
	data  *SchemaData
	names map[string]int
}

// Prepare converts a descriptor into SchemaData. rootName names the root
// type; nested objects are extracted as types named after their field.
func Prepare(pkg, rootName string, d *schema.Descriptor) *SchemaData {
	ctx := &prepareContext{
		data:  &SchemaData{Package: pkg},
		names: make(map[string]int),
	}

	root := ctx.typeName(rootName)
	if d.Kind == schema.KindObject {
		ctx.data.Defs = append(ctx.data.Defs, TypeDef{Name: root, Fields: ctx.resolveFields(d)})
	} else {
		underlying := ctx.resolveType(d, rootName+"_item")
		ctx.data.Defs = append(ctx.data.Defs, TypeDef{Name: root, Underlying: underlying})
	}
	return ctx.data
}

func (c *prepareContext) resolveFields(d *schema.Descriptor) []Field {
	names := d.FieldNames()
	seen := make(map[string]int, len(names))

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		ident := ToPascalCase(name)
		if n := seen[ident]; n > 0 {
			ident += strconv.Itoa(n + 1)
		}
		seen[ident]++

		fields = append(fields, Field{
			Name: ident,
			Type: c.resolveType(d.Fields[name], name),
			Tag:  "`json:\"" + name + "\"`",
		})
	}
	return fields
}

func (c *prepareContext) resolveType(d *schema.Descriptor, fieldName string) string {
	switch d.Kind {
	case schema.KindString:
		return "string"
	case schema.KindNumber:
		return "float64"
	case schema.KindBoolean:
		return "bool"
	case schema.KindDate:
		c.data.NeedsTime = true
		return "time.Time"
	case schema.KindArray:
		return "[]" + c.resolveType(d.Elem, fieldName)
	case schema.KindObject:
		name := c.typeName(fieldName)
		fields := c.resolveFields(d)
		c.data.Defs = append(c.data.Defs, TypeDef{Name: name, Fields: fields})
		return name
	default:
		return "any"
	}
}

// typeName returns a unique exported type name for s.
func (c *prepareContext) typeName(s string) string {
	name := ToPascalCase(s)
	c.names[name]++
	if n := c.names[name]; n > 1 {
		name += strconv.Itoa(n)
	}
	return name
}

// ToPascalCase converts a snake_case or camelCase string to an exported Go
// identifier. Common acronyms are fully uppercased.
func ToPascalCase(s string) string {
	acronyms := map[string]string{
		"id":   "ID",
		"url":  "URL",
		"http": "HTTP",
		"api":  "API",
		"json": "JSON",
		"xml":  "XML",
		"sql":  "SQL",
		"html": "HTML",
		"ip":   "IP",
		"uri":  "URI",
		"uuid": "UUID",
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9')
	})

	var sb strings.Builder
	for _, part := range parts {
		lower := strings.ToLower(part)
		if acronym, ok := acronyms[lower]; ok {
			sb.WriteString(acronym)
		} else {
			sb.WriteString(strings.ToUpper(part[:1]) + part[1:])
		}
	}

	result := sb.String()
	if result == "" || result[0] < 'A' || result[0] > 'Z' {
		result = "X" + result
	}
	return result
}
