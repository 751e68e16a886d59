// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package render

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/dacolabs/autofuzz/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// structFields parses src and returns "Name Type" pairs for each struct type.
func structFields(t *testing.T, src []byte) map[string][]string {
	t.Helper()
	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)

	types := make(map[string][]string)
	ast.Inspect(file, func(n ast.Node) bool {
		spec, ok := n.(*ast.TypeSpec)
		if !ok {
			return true
		}
		st, ok := spec.Type.(*ast.StructType)
		if !ok {
			types[spec.Name.Name] = nil
			return false
		}
		var fields []string
		for _, f := range st.Fields.List {
			fields = append(fields, f.Names[0].Name+" "+string(src[f.Type.Pos()-1:f.Type.End()-1]))
		}
		types[spec.Name.Name] = fields
		return false
	})
	return types
}

func TestGoTypes_Object(t *testing.T) {
	d := schema.ObjectOf(map[string]*schema.Descriptor{
		"name": schema.Primitive(schema.KindString),
		"age":  schema.Primitive(schema.KindNumber),
		"owner": schema.ObjectOf(map[string]*schema.Descriptor{
			"id":         schema.Primitive(schema.KindNumber),
			"created_at": schema.Primitive(schema.KindDate),
		}),
		"labels": schema.ArrayOf(schema.ObjectOf(map[string]*schema.Descriptor{
			"active": schema.Primitive(schema.KindBoolean),
		})),
	})

	src, err := GoTypes("fixtures", "user", d)
	require.NoError(t, err)

	out := string(src)
	assert.True(t, strings.HasPrefix(out, "// Code generated by autofuzz derive. DO NOT EDIT."))
	assert.Contains(t, out, "package fixtures")
	assert.Contains(t, out, `import "time"`)

	assert.Equal(t, map[string][]string{
		"User":   {"Age float64", "Labels []Labels", "Name string", "Owner Owner"},
		"Owner":  {"CreatedAt time.Time", "ID float64"},
		"Labels": {"Active bool"},
	}, structFields(t, src))
	assert.Contains(t, out, "`json:\"created_at\"`")

	// Nested types are declared before the root.
	assert.Less(t, strings.Index(out, "type Owner struct"), strings.Index(out, "type User struct"))
}

func TestGoTypes_PrimitiveRoot(t *testing.T) {
	src, err := GoTypes("fixtures", "matrix", schema.ArrayOf(schema.ArrayOf(schema.Primitive(schema.KindNumber))))
	require.NoError(t, err)

	out := string(src)
	assert.Contains(t, out, "type Matrix [][]float64")
	assert.NotContains(t, out, "import")
}

func TestGoTypes_NameCollisions(t *testing.T) {
	d := schema.ObjectOf(map[string]*schema.Descriptor{
		"item": schema.ObjectOf(map[string]*schema.Descriptor{
			"item": schema.ObjectOf(map[string]*schema.Descriptor{
				"x": schema.Primitive(schema.KindNumber),
			}),
		}),
		"user-id": schema.Primitive(schema.KindString),
		"user_id": schema.Primitive(schema.KindString),
	})

	src, err := GoTypes("fixtures", "item", d)
	require.NoError(t, err)

	types := structFields(t, src)
	assert.Equal(t, []string{"Item Item2", "UserID string", "UserID2 string"}, types["Item"])
	assert.Equal(t, []string{"Item Item3"}, types["Item2"])
	assert.Equal(t, []string{"X float64"}, types["Item3"])
}

func TestGoTypes_InvalidPackage(t *testing.T) {
	_, err := GoTypes("not a package", "user", schema.Primitive(schema.KindString))
	assert.Error(t, err)
}

func TestToPascalCase(t *testing.T) {
	tests := map[string]string{
		"user_id":    "UserID",
		"created-at": "CreatedAt",
		"firstName":  "FirstName",
		"api url":    "APIURL",
		"9lives":     "X9lives",
		"":           "X",
		"$ref":       "Ref",
	}
	for in, want := range tests {
		assert.Equal(t, want, ToPascalCase(in), in)
	}
}
