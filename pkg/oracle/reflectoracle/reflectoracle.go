// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package reflectoracle is an oracle that checks candidates against a Go type.
//
// Struct fields are visited in declaration order. Field names follow the
// encoding/json conventions: a json tag renames a field, "-" skips it, and
// unexported fields are ignored. Every visited field is required.
//
// Go kinds map onto schema kinds as follows: string to string, integers and
// floats to number, bool to boolean, time.Time to date, slices to array and
// structs to object. Integer fields additionally demand an integral value
// that fits the field, so factories for such types should be configured
// with genconfig.WithIntegerNumbersOnly and matching number bounds. Any other
// Go type is reported by its type name, which a factory rejects as
// unsupported.
package reflectoracle

import (
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/dacolabs/autofuzz/pkg/schema"
)

const (
	kindInteger  schema.Kind = "integer"
	kindUnsigned schema.Kind = "unsigned integer"
)

var timeType = reflect.TypeFor[time.Time]()

// Fill returns a fill function for T. The candidate is checked first and only
// decoded into a T once it conforms.
func Fill[T any]() fuzzer.FillFunc[T] {
	t := reflect.TypeFor[T]()
	return func(candidate any) (T, error) {
		var out T
		if v := check(t, candidate, nil); v != nil {
			return out, v
		}
		decode(reflect.ValueOf(&out).Elem(), candidate)
		return out, nil
	}
}

// Check reports the first violation of candidate against t, or nil.
func Check(t reflect.Type, candidate any) error {
	if v := check(t, candidate, nil); v != nil {
		return v
	}
	return nil
}

func check(t reflect.Type, v any, path schema.Path) *schema.Violation {
	if t == timeType {
		if _, ok := v.(time.Time); !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindDate))
		}
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		if _, ok := v.(string); !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindString))
		}
	case reflect.Bool:
		if _, ok := v.(bool); !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindBoolean))
		}
	case reflect.Float32, reflect.Float64:
		if _, ok := v.(float64); !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindNumber))
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := v.(float64)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindNumber))
		}
		if f != math.Trunc(f) || math.Abs(f) >= 1<<63 || reflect.Zero(t).OverflowInt(int64(f)) {
			return schema.NewViolation(path, schema.WrongType(kindInteger))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := v.(float64)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindNumber))
		}
		if f != math.Trunc(f) || f < 0 || f >= 1<<64 || reflect.Zero(t).OverflowUint(uint64(f)) {
			return schema.NewViolation(path, schema.WrongType(kindUnsigned))
		}
	case reflect.Slice:
		arr, ok := v.([]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindArray))
		}
		for i, elem := range arr {
			if viol := check(t.Elem(), elem, path.Append(schema.Index(i))); viol != nil {
				return viol
			}
		}
	case reflect.Struct:
		obj, ok := v.(map[string]any)
		if !ok {
			return schema.NewViolation(path, schema.WrongType(schema.KindObject))
		}
		for _, f := range fields(t) {
			value, ok := obj[f.name]
			if !ok {
				return schema.NewViolation(path, schema.Missing(f.name))
			}
			if viol := check(f.typ, value, path.Append(schema.Prop(f.name))); viol != nil {
				return viol
			}
		}
	default:
		return schema.NewViolation(path, schema.WrongType(schema.Kind(t.String())))
	}
	return nil
}

// decode stores a checked candidate into dst.
func decode(dst reflect.Value, v any) {
	t := dst.Type()
	if t == timeType {
		dst.Set(reflect.ValueOf(v.(time.Time)))
		return
	}

	switch t.Kind() {
	case reflect.String:
		dst.SetString(v.(string))
	case reflect.Bool:
		dst.SetBool(v.(bool))
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(v.(float64))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dst.SetInt(int64(v.(float64)))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		dst.SetUint(uint64(v.(float64)))
	case reflect.Slice:
		arr := v.([]any)
		s := reflect.MakeSlice(t, len(arr), len(arr))
		for i, elem := range arr {
			decode(s.Index(i), elem)
		}
		dst.Set(s)
	case reflect.Struct:
		obj := v.(map[string]any)
		for _, f := range fields(t) {
			decode(dst.Field(f.index), obj[f.name])
		}
	}
}

type field struct {
	name  string
	index int
	typ   reflect.Type
}

// fields lists the visited fields of a struct type in declaration order.
func fields(t reflect.Type) []field {
	out := make([]field, 0, t.NumField())
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		out = append(out, field{name: name, index: i, typ: sf.Type})
	}
	return out
}
