// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{name: "root", path: nil, want: "$"},
		{name: "property", path: ParsePath("id"), want: "$.id"},
		{name: "nested with index", path: ParsePath("nestedObj", "key1", 2), want: "$.nestedObj.key1[2]"},
		{name: "quoted name", path: ParsePath("first name"), want: `$["first name"]`},
		{name: "leading digit", path: ParsePath("1st"), want: `$["1st"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestPath_AppendDoesNotAlias(t *testing.T) {
	base := ParsePath("a")
	left := base.Append(Prop("b"))
	right := base.Append(Prop("c"))

	assert.Equal(t, "$.a.b", left.String())
	assert.Equal(t, "$.a.c", right.String())
	assert.Equal(t, "$.a", base.String())
}

func TestPath_ParentAndElement(t *testing.T) {
	p := ParsePath("list", 0)
	assert.True(t, p.IsElement())
	assert.Equal(t, "$.list", p.Parent().String())
	assert.False(t, p.Parent().IsElement())
	assert.True(t, Path{}.Parent().IsRoot())
}

func TestDescriptor_Lookup(t *testing.T) {
	d := ObjectOf(map[string]*Descriptor{
		"id": Primitive(KindNumber),
		"items": ArrayOf(ObjectOf(map[string]*Descriptor{
			"name": Primitive(KindString),
		})),
	})

	assert.Equal(t, KindNumber, d.Lookup(ParsePath("id")).Kind)
	assert.Equal(t, KindString, d.Lookup(ParsePath("items", 0, "name")).Kind)
	assert.Equal(t, KindObject, d.Lookup(ParsePath("items", 3)).Kind)
	assert.Nil(t, d.Lookup(ParsePath("id", 0)))
	assert.Nil(t, d.Lookup(ParsePath("missing")))
	assert.Same(t, d, d.Lookup(nil))
}

func TestDescriptor_CloneIsDeep(t *testing.T) {
	d := ObjectOf(map[string]*Descriptor{
		"tags": ArrayOf(Primitive(KindString)),
	})
	c := d.Clone()
	c.Fields["tags"].Elem.Kind = KindDate
	c.Fields["extra"] = Primitive(KindBoolean)

	assert.Equal(t, KindString, d.Fields["tags"].Elem.Kind)
	assert.NotContains(t, d.Fields, "extra")
}

func TestDescriptor_String(t *testing.T) {
	d := ObjectOf(map[string]*Descriptor{
		"id":     Primitive(KindNumber),
		"matrix": ArrayOf(ArrayOf(Primitive(KindNumber))),
		"owners": ArrayOf(ObjectOf(map[string]*Descriptor{"name": Primitive(KindString)})),
	})
	assert.Equal(t, "{id: number, matrix: number[][], owners: Array<{name: string}>}", d.String())
}

func TestKind(t *testing.T) {
	assert.True(t, KindDate.IsPrimitive())
	assert.False(t, KindArray.IsPrimitive())
	assert.True(t, KindObject.IsKnown())
	assert.False(t, Kind("bigint").IsKnown())
}

func TestViolation(t *testing.T) {
	v := NewViolation(ParsePath("user"), Missing("email"))
	assert.Equal(t, `$.user: missing property "email"`, v.Error())
	assert.True(t, v.Reason.IsMissing())

	w := NewViolation(ParsePath("user", "age"), WrongType(KindNumber))
	assert.Equal(t, "$.user.age: expected number", w.Error())
	assert.Equal(t, KindNumber, w.Reason.Required())

	assert.Equal(t, v.Signature(), NewViolation(ParsePath("user"), Missing("email")).Signature())
	assert.NotEqual(t, v.Signature(), w.Signature())
}

func TestFieldError(t *testing.T) {
	err := Unsupported(ParsePath("n"), "bigint")
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "$.n")
	assert.Contains(t, err.Error(), `"bigint"`)
	assert.Contains(t, err.Error(), "manually")

	cause := errors.New("boom")
	contract := ContractViolation(ParsePath("x"), KindNumber, cause)
	assert.ErrorIs(t, contract, ErrUnsupportedType)
	assert.ErrorIs(t, contract, ErrOracleContract)
	assert.ErrorIs(t, contract, cause)

	var fe *FieldError
	require.ErrorAs(t, NonConvergent(ParsePath("y"), KindString, "repeated"), &fe)
	assert.ErrorIs(t, fe, ErrDerivationNonConvergent)
	assert.Equal(t, KindString, fe.Kind)
}
