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

package mangle

// RNG is the random source a Run borrows for the duration of a
// MangleContent call. Seeding policy, thread-safety, and the choice of
// underlying algorithm are all the caller's concern; package rng ships
// reference implementations.
type RNG interface {
	// Get returns a uniform integer in the inclusive range [lo, hi].
	Get(lo, hi int) int
	// Uint64 returns a uniform 64-bit value.
	Uint64() uint64
	// FillBytes fills dst with uniform random bytes.
	FillBytes(dst []byte)
	// FillPrintable fills dst with uniform random bytes drawn from the
	// printable ASCII range [0x20, 0x7E].
	FillPrintable(dst []byte)
	// Printable returns one printable ASCII byte.
	Printable() byte
}

const (
	printableLo    = 0x20
	printableHi    = 0x7E
	printableRange = printableHi - printableLo + 1 // 95
)

// turnToPrintable maps each byte in dst onto the printable ASCII range via
// b := (b mod 95) + 32 (a many-to-one projection of the 256 byte values).
func turnToPrintable(dst []byte) {
	for i, b := range dst {
		dst[i] = b%printableRange + printableLo
	}
}
