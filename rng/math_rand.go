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

// Package rng provides reference implementations of mangle.RNG. The
// core mangle package treats the RNG purely as an interface; this
// package is the caller-side collaborator that satisfies it.
package rng

import (
	"math/rand"

	"github.com/cirrusfuzz/mangle"
)

const printableLo = 0x20
const printableRange = 0x7E - 0x20 + 1

// MathRand is a fast, non-cryptographic mangle.RNG backed by
// math/rand.Rand. The reference CLI uses it on hardware without AVX2 or
// AVX-512F (ChaChaRand otherwise). It is not safe for concurrent use by
// more than one Run at a time — each Run should own its own instance.
type MathRand struct {
	r *rand.Rand
}

var _ mangle.RNG = (*MathRand)(nil)

// NewMathRand returns a MathRand seeded deterministically from seed.
// Two MathRand instances constructed with the same seed drive identical
// MangleContent sequences against identical inputs.
func NewMathRand(seed int64) *MathRand {
	return &MathRand{r: rand.New(rand.NewSource(seed))}
}

func (m *MathRand) Get(lo, hi int) int {
	if hi < lo {
		panic("rng: MathRand.Get: hi < lo")
	}
	return lo + m.r.Intn(hi-lo+1)
}

func (m *MathRand) Uint64() uint64 { return m.r.Uint64() }

func (m *MathRand) FillBytes(dst []byte) {
	for i := range dst {
		dst[i] = byte(m.r.Intn(256))
	}
}

func (m *MathRand) FillPrintable(dst []byte) {
	for i := range dst {
		dst[i] = byte(m.r.Intn(printableRange)) + printableLo
	}
}

func (m *MathRand) Printable() byte {
	return byte(m.r.Intn(printableRange)) + printableLo
}
