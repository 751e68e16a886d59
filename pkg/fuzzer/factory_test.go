// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package fuzzer_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dacolabs/autofuzz/internal/oracletest"
	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/dacolabs/autofuzz/pkg/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func baseConfig() genconfig.Config {
	return genconfig.DefaultAt(fixedNow)
}

func TestNew_PrimitiveRoot(t *testing.T) {
	oracle := oracletest.New(schema.Primitive(schema.KindNumber))
	f, err := fuzzer.New[any](oracle.Fill)
	require.NoError(t, err)

	assert.Equal(t, schema.KindNumber, f.Schema().Kind)
	for range 50 {
		v, err := f.Generate()
		require.NoError(t, err)
		n := v.(float64)
		assert.GreaterOrEqual(t, n, float64(-genconfig.MaxSafeInteger))
		assert.LessOrEqual(t, n, float64(genconfig.MaxSafeInteger))
	}
}

func TestGenerate_ObjectExample(t *testing.T) {
	oracle := oracletest.New(schema.ObjectOf(map[string]*schema.Descriptor{
		"id": schema.Primitive(schema.KindNumber),
	}))
	f, err := fuzzer.New[any](oracle.Fill)
	require.NoError(t, err)

	v, err := f.Generate()
	require.NoError(t, err)

	obj := v.(map[string]any)
	require.Len(t, obj, 1)
	n, ok := obj["id"].(float64)
	require.True(t, ok)
	assert.LessOrEqual(t, math.Abs(n), float64(genconfig.MaxSafeInteger))
}

func TestGenerate_NestedArrayExample(t *testing.T) {
	oracle := oracletest.New(schema.ArrayOf(schema.ArrayOf(schema.Primitive(schema.KindNumber))))
	f, err := fuzzer.New[any](oracle.Fill,
		fuzzer.WithOverrides(genconfig.WithArrayLengthBounds(1, 1)))
	require.NoError(t, err)

	v, err := f.Generate()
	require.NoError(t, err)

	outer := v.([]any)
	require.Len(t, outer, 1)
	inner := outer[0].([]any)
	require.Len(t, inner, 1)
	assert.IsType(t, float64(0), inner[0])
}

func TestGenerate_EveryValuePassesOracle(t *testing.T) {
	want := schema.ObjectOf(map[string]*schema.Descriptor{
		"name":  schema.Primitive(schema.KindString),
		"born":  schema.Primitive(schema.KindDate),
		"admin": schema.Primitive(schema.KindBoolean),
		"teams": schema.ArrayOf(schema.ObjectOf(map[string]*schema.Descriptor{
			"id":      schema.Primitive(schema.KindNumber),
			"members": schema.ArrayOf(schema.Primitive(schema.KindString)),
		})),
	})
	oracle := oracletest.New(want)
	f, err := fuzzer.New[any](oracle.Fill, fuzzer.WithConfig(baseConfig().With(
		genconfig.WithStringLengthBounds(0, 12),
		genconfig.WithArrayLengthBounds(0, 4),
	)))
	require.NoError(t, err)

	values, err := f.GenerateN(100)
	require.NoError(t, err)
	require.Len(t, values, 100)
	for _, v := range values {
		assert.NoError(t, oracle.Check(v))
	}
}

func TestGenerate_BoundsRespected(t *testing.T) {
	lo := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC)
	cfg := baseConfig().With(
		genconfig.WithIntegerNumbersOnly(true),
		genconfig.WithNumberBounds(-5, 5),
		genconfig.WithStringLengthBounds(3, 4),
		genconfig.WithArrayLengthBounds(2, 3),
		genconfig.WithDateBounds(lo, hi),
	)
	oracle := oracletest.New(schema.ObjectOf(map[string]*schema.Descriptor{
		"n":     schema.Primitive(schema.KindNumber),
		"s":     schema.Primitive(schema.KindString),
		"list":  schema.ArrayOf(schema.Primitive(schema.KindNumber)),
		"when":  schema.Primitive(schema.KindDate),
		"flags": schema.ArrayOf(schema.Primitive(schema.KindBoolean)),
	}))
	f, err := fuzzer.New[any](oracle.Fill, fuzzer.WithConfig(cfg))
	require.NoError(t, err)

	for range 200 {
		v, err := f.Generate()
		require.NoError(t, err)
		obj := v.(map[string]any)

		n := obj["n"].(float64)
		assert.True(t, n >= -5 && n <= 5 && n == math.Trunc(n), "n=%v", n)
		assert.True(t, len(obj["s"].(string)) >= 3 && len(obj["s"].(string)) <= 4)
		list := obj["list"].([]any)
		assert.True(t, len(list) >= 2 && len(list) <= 3)
		when := obj["when"].(time.Time)
		assert.False(t, when.Before(lo) || when.After(hi))
	}
}

func TestGenerate_OverridesApplyToOneCall(t *testing.T) {
	oracle := oracletest.New(schema.ArrayOf(schema.Primitive(schema.KindString)))
	f, err := fuzzer.New[any](oracle.Fill, fuzzer.WithConfig(baseConfig().With(
		genconfig.WithArrayLengthBounds(5, 5),
		genconfig.WithStringLengthBounds(2, 2),
	)))
	require.NoError(t, err)

	v, err := f.Generate(genconfig.WithArrayLengthBounds(1, 1), genconfig.WithStringLengthBounds(9, 9))
	require.NoError(t, err)
	require.Len(t, v.([]any), 1)
	assert.Len(t, v.([]any)[0].(string), 9)

	v, err = f.Generate()
	require.NoError(t, err)
	require.Len(t, v.([]any), 5)
	assert.Len(t, v.([]any)[0].(string), 2)

	assert.Equal(t, genconfig.Range[int]{Min: 5, Max: 5}, f.Config().ArrayLengthBounds)
}

func TestGenerate_RandomSourceIsShared(t *testing.T) {
	oracle := oracletest.New(schema.Primitive(schema.KindString))
	cfg := baseConfig().With(genconfig.WithStringLengthBounds(16, 16))

	f, err := fuzzer.New[any](oracle.Fill, fuzzer.WithConfig(cfg))
	require.NoError(t, err)
	first, err := f.Generate()
	require.NoError(t, err)
	second, err := f.Generate()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// A second factory with the same seed replays the same sequence.
	g, err := fuzzer.New[any](oracle.Fill, fuzzer.WithConfig(cfg))
	require.NoError(t, err)
	replay, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, first, replay)

	// Reseeding both factories aligns them again.
	f.Reseed("again")
	g.Reseed("again")
	a, err := f.Generate()
	require.NoError(t, err)
	b, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "again", f.Config().RandomSeed)
}

func TestNew_SchemaStability(t *testing.T) {
	want := schema.ObjectOf(map[string]*schema.Descriptor{
		"nestedObj": schema.ObjectOf(map[string]*schema.Descriptor{
			"key1": schema.ArrayOf(schema.Primitive(schema.KindDate)),
		}),
	})

	f1, err := fuzzer.New[any](oracletest.New(want).Fill, fuzzer.WithOverrides(genconfig.WithSeed("a")))
	require.NoError(t, err)
	f2, err := fuzzer.New[any](oracletest.New(want).Fill, fuzzer.WithOverrides(genconfig.WithSeed("b")))
	require.NoError(t, err)

	if diff := cmp.Diff(f1.Schema(), f2.Schema()); diff != "" {
		t.Errorf("schemas differ (-first +second):\n%s", diff)
	}
	assert.Empty(t, cmp.Diff(want, f1.Schema()))
}

func TestSchema_ReturnsCopy(t *testing.T) {
	oracle := oracletest.New(schema.ObjectOf(map[string]*schema.Descriptor{
		"id": schema.Primitive(schema.KindNumber),
	}))
	f, err := fuzzer.New[any](oracle.Fill)
	require.NoError(t, err)

	s := f.Schema()
	s.Fields["id"].Kind = schema.KindString

	v, err := f.Generate()
	require.NoError(t, err)
	assert.IsType(t, float64(0), v.(map[string]any)["id"])
}

func TestNew_UnsupportedType(t *testing.T) {
	oracle := oracletest.New(schema.ObjectOf(map[string]*schema.Descriptor{
		"payload": schema.Primitive("symbol"),
	}))

	_, err := fuzzer.New[any](oracle.Fill)
	require.ErrorIs(t, err, schema.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "$.payload")
	assert.Contains(t, err.Error(), "symbol")
}

func TestNew_NonConvergent(t *testing.T) {
	fill := func(candidate any) (string, error) {
		if candidate != "exactly this" {
			return "", schema.NewViolation(nil, schema.WrongType(schema.KindString))
		}
		return "exactly this", nil
	}
	// First probe is an empty object: the target is detected as a bare string
	// and derivation succeeds, but generation can never satisfy the oracle.
	f, err := fuzzer.New(fill)
	require.NoError(t, err)
	_, err = f.Generate()
	var v *schema.Violation
	assert.ErrorAs(t, err, &v)

	objectFill := func(candidate any) (any, error) {
		obj, ok := candidate.(map[string]any)
		if !ok {
			return nil, schema.NewViolation(nil, schema.WrongType(schema.KindObject))
		}
		if obj["kind"] != "user" {
			if _, ok := obj["kind"]; !ok {
				return nil, schema.NewViolation(nil, schema.Missing("kind"))
			}
			return nil, schema.NewViolation(schema.ParsePath("kind"), schema.WrongType(schema.KindString))
		}
		return obj, nil
	}
	_, err = fuzzer.New(objectFill)
	assert.ErrorIs(t, err, schema.ErrDerivationNonConvergent)
}

func TestNew_RoundCap(t *testing.T) {
	oracle := oracletest.New(schema.ObjectOf(map[string]*schema.Descriptor{
		"a": schema.Primitive(schema.KindString),
		"b": schema.Primitive(schema.KindString),
	}))
	_, err := fuzzer.New[any](oracle.Fill, fuzzer.WithMaxDerivationRounds(2))
	assert.ErrorIs(t, err, schema.ErrDerivationNonConvergent)
}

func TestNew_InvalidConfig(t *testing.T) {
	oracle := oracletest.New(schema.Primitive(schema.KindNumber))
	_, err := fuzzer.New[any](oracle.Fill, fuzzer.WithOverrides(genconfig.WithNumberBounds(1, 0)))
	assert.ErrorIs(t, err, genconfig.ErrInvalidConfig)

	f, err := fuzzer.New[any](oracle.Fill)
	require.NoError(t, err)
	_, err = f.Generate(genconfig.WithBooleanTrueOdds(2))
	assert.ErrorIs(t, err, genconfig.ErrInvalidConfig)
}

func TestNew_NilFill(t *testing.T) {
	_, err := fuzzer.New[any](nil)
	assert.Error(t, err)
}

func TestMust(t *testing.T) {
	oracle := oracletest.New(schema.Primitive(schema.KindBoolean))
	assert.NotPanics(t, func() { fuzzer.Must(fuzzer.New[any](oracle.Fill)) })
	assert.Panics(t, func() { fuzzer.Must[any](nil, errors.New("boom")) })
}
