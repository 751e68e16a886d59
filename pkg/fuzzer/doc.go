// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package fuzzer builds factories of random, type-conformant test values.
//
// A Factory is constructed from a fill function that hands a candidate to an
// oracle and returns the oracle-narrowed value. Construction probes the oracle
// once to derive the target's schema; every later call generates a random
// candidate from that schema and passes it through the fill function again:
//
//	users, err := fuzzer.New(reflectoracle.Fill[User]())
//	if err != nil {
//		return err
//	}
//	u, err := users.Generate(genconfig.WithStringLengthBounds(1, 8))
//
// A Factory owns one random source, advanced by derivation and by every call.
// It is not safe for concurrent use; give each goroutine its own Factory.
package fuzzer
