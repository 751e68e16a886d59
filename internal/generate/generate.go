// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package generate produces random values from type descriptors.
package generate

import (
	"crypto/sha256"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"github.com/dacolabs/autofuzz/pkg/schema"
)

// Printable characters used for generated strings.
const (
	firstPrintable = 0x20
	lastPrintable  = 0x7e
)

// NewSource returns a deterministic random source for seed.
func NewSource(seed string) *rand.Rand {
	return rand.New(rand.NewChaCha8(sha256.Sum256([]byte(seed))))
}

// Generator draws values from a shared random source. It is not safe for
// concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Value generates one value for d under cfg. path locates d in the target shape
// and is only used for error messages.
//
// Objects become map[string]any, arrays []any, dates time.Time and numbers
// float64.
func (g *Generator) Value(d *schema.Descriptor, cfg genconfig.Config, path schema.Path) (any, error) {
	if d == nil {
		return nil, schema.Unsupported(path, "")
	}
	switch d.Kind {
	case schema.KindString:
		return g.String(cfg.StringLengthBounds), nil
	case schema.KindNumber:
		return g.Number(cfg.NumberBounds, cfg.IntegerNumbersOnly), nil
	case schema.KindBoolean:
		return g.Bool(cfg.BooleanTrueOdds), nil
	case schema.KindDate:
		return g.Date(cfg.DateBounds), nil
	case schema.KindArray:
		n := g.intIn(cfg.ArrayLengthBounds)
		out := make([]any, n)
		for i := range out {
			v, err := g.Value(d.Elem, cfg, path.Append(schema.Index(i)))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case schema.KindObject:
		out := make(map[string]any, len(d.Fields))
		// Sorted order keeps the draw sequence reproducible.
		for _, name := range d.FieldNames() {
			v, err := g.Value(d.Fields[name], cfg, path.Append(schema.Prop(name)))
			if err != nil {
				return nil, err
			}
			out[name] = v
		}
		return out, nil
	default:
		return nil, schema.Unsupported(path, d.Kind)
	}
}

// String returns a string of printable ASCII with a length drawn from bounds.
func (g *Generator) String(bounds genconfig.Range[int]) string {
	n := g.intIn(bounds)
	var b strings.Builder
	b.Grow(n)
	for range n {
		b.WriteByte(byte(firstPrintable + g.rng.IntN(lastPrintable-firstPrintable+1)))
	}
	return b.String()
}

// Number returns a value drawn uniformly from bounds. With integer set, the
// value is rounded to the nearest integer inside bounds.
func (g *Generator) Number(bounds genconfig.Range[float64], integer bool) float64 {
	v := bounds.Min + g.rng.Float64()*(bounds.Max-bounds.Min)
	if v > bounds.Max {
		v = bounds.Max
	}
	if !integer {
		return v
	}
	lo, hi := math.Ceil(bounds.Min), math.Floor(bounds.Max)
	return math.Min(math.Max(math.Round(v), lo), hi)
}

// Bool returns true with probability odds.
func (g *Generator) Bool(odds float64) bool {
	return g.rng.Float64() < odds
}

// Date returns a UTC time drawn uniformly, at millisecond precision, from bounds.
func (g *Generator) Date(bounds genconfig.Range[time.Time]) time.Time {
	lo, hi := bounds.Min.UnixMilli(), bounds.Max.UnixMilli()
	if time.UnixMilli(lo).Before(bounds.Min) {
		lo++
	}
	if time.UnixMilli(hi).After(bounds.Max) {
		hi--
	}
	if hi < lo {
		// Both bounds fall inside the same millisecond.
		return bounds.Min.UTC()
	}
	return time.UnixMilli(lo + g.rng.Int64N(hi-lo+1)).UTC()
}

func (g *Generator) intIn(bounds genconfig.Range[int]) int {
	if bounds.Max <= bounds.Min {
		return bounds.Min
	}
	return bounds.Min + g.rng.IntN(bounds.Max-bounds.Min+1)
}
