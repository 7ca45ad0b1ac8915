// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package mangle implements the input-mangling core of a coverage-guided
// fuzzer: a library of deterministic-given-a-seed, randomized byte-buffer
// mutation operators. The package owns no I/O, no corpus, and no RNG
// seeding policy — it borrows a caller-supplied Buffer, RNG, and
// Dictionary for the duration of a single MangleContent call.
package mangle

// Buffer is the mutable, contiguous byte region a Run mutates in place.
// The caller owns the storage; the core only ever addresses
// Bytes()[0:Size()].
type Buffer interface {
	// Bytes returns the full backing slice; only indices [0, Size()) are
	// addressable by the core, but callers may rely on cap(Bytes()) to be
	// at least MaxSize() so that repeated SetSize calls do not reallocate.
	Bytes() []byte
	// Size returns the current logical length.
	Size() int
	// MaxSize returns the hard ceiling on Size.
	MaxSize() int
	// SetSize resizes the buffer so that indices [0, n) are addressable,
	// updating Size() to n. n is always <= MaxSize(). Bytes in any
	// newly-exposed region are unspecified until written. SetSize is
	// assumed infallible for n <= MaxSize(); if the caller's backing
	// storage cannot grow, it must panic rather than return an error.
	SetSize(n int)
}

// Run bundles the state one MangleContent call mutates: a borrowed
// Buffer, RNG, and Dictionary, plus the per-call configuration
// constants.
type Run struct {
	Buf  Buffer
	Rng  RNG
	Dict Dictionary

	// MutationsPerRun is the ceiling on stacked operator applications per
	// MangleContent call; the actual count is drawn uniformly from
	// [1, MutationsPerRun]. Zero means "do nothing."
	MutationsPerRun int
	// OnlyPrintable constrains every newly-written byte to
	// [0x20, 0x7E] for the duration of this call.
	OnlyPrintable bool
}

// size is a short-hand used throughout primitives.go/operators.go.
func (r *Run) size() int    { return r.Buf.Size() }
func (r *Run) maxSize() int { return r.Buf.MaxSize() }
func (r *Run) bytes() []byte {
	return r.Buf.Bytes()
}
