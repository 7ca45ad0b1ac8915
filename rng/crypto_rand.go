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

package rng

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"

	"github.com/cirrusfuzz/mangle"
	"github.com/cirrusfuzz/mangle/ints"
)

// CryptoRand is a mangle.RNG backed by the OS entropy source. It draws
// on every call, so it is slower than MathRand; use it when the
// mutation sequence itself must not be predictable from an observed
// seed (e.g. a public fuzzing-as-a-service endpoint).
type CryptoRand struct{}

var _ mangle.RNG = CryptoRand{}

func (CryptoRand) Get(lo, hi int) int {
	if hi < lo {
		panic("rng: CryptoRand.Get: hi < lo")
	}
	n := int64(hi-lo) + 1
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(err) // OS entropy failures abort; there is no fallback branch
	}
	return lo + int(v.Int64())
}

func (CryptoRand) Uint64() uint64 {
	var buf [8]byte
	if err := ints.RandomFillSlice(buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (CryptoRand) FillBytes(dst []byte) {
	if err := ints.RandomFillSlice(dst); err != nil {
		panic(err)
	}
}

func (c CryptoRand) FillPrintable(dst []byte) {
	c.FillBytes(dst)
	for i, b := range dst {
		dst[i] = b%printableRange + printableLo
	}
}

func (c CryptoRand) Printable() byte {
	var b [1]byte
	c.FillPrintable(b[:])
	return b[0]
}
