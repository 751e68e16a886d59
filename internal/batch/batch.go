// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package batch generates many values concurrently with one factory per
// worker.
package batch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dacolabs/autofuzz/pkg/fuzzer"
	"github.com/dacolabs/autofuzz/pkg/genconfig"
	"golang.org/x/sync/errgroup"
)

// Request describes a batch.
type Request struct {
	// Count is the total number of values.
	Count int
	// Workers is the number of factories run in parallel. It is clamped to
	// [1, Count].
	Workers int
	// Seed is combined with the worker number to seed each factory.
	Seed string
	// Overrides apply to every generated value.
	Overrides []genconfig.Override
}

// WorkerSeed returns the seed used by worker w.
func WorkerSeed(seed string, w int) string {
	return fmt.Sprintf("%s/%d", seed, w)
}

// Split returns how many values each worker produces. Earlier workers take
// the remainder.
func Split(count, workers int) []int {
	if count <= 0 {
		return nil
	}
	workers = max(1, min(workers, count))
	out := make([]int, workers)
	for w := range out {
		out[w] = count / workers
		if w < count%workers {
			out[w]++
		}
	}
	return out
}

// Run generates req.Count values. Each worker derives its own factory from
// fill, so fill must be safe for concurrent use. Results are returned in
// worker order, which makes the output a function of the seed and worker
// count alone.
func Run[T any](ctx context.Context, fill fuzzer.FillFunc[T], req Request, opts ...fuzzer.Option) ([]T, error) {
	if req.Count < 0 {
		return nil, errors.New("batch: count must not be negative")
	}
	seed := req.Seed
	if seed == "" {
		seed = genconfig.DefaultSeed
	}

	shares := Split(req.Count, req.Workers)
	results := make([][]T, len(shares))

	g, ctx := errgroup.WithContext(ctx)
	for w, share := range shares {
		g.Go(func() error {
			workerOpts := append(opts[:len(opts):len(opts)],
				fuzzer.WithOverrides(genconfig.WithSeed(WorkerSeed(seed, w))))
			f, err := fuzzer.New(fill, workerOpts...)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}

			out := make([]T, 0, share)
			for i := range share {
				if err := ctx.Err(); err != nil {
					return err
				}
				v, err := f.Generate(req.Overrides...)
				if err != nil {
					return fmt.Errorf("worker %d: value %d: %w", w, i, err)
				}
				out = append(out, v)
			}
			results[w] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	all := make([]T, 0, req.Count)
	for _, r := range results {
		all = append(all, r...)
	}
	return all, nil
}
