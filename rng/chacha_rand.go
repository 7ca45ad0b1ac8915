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
	"encoding/binary"

	"golang.org/x/crypto/chacha20"

	"github.com/cirrusfuzz/mangle"
)

// ChaChaRand is a deterministic, seedable mangle.RNG drawn from a
// ChaCha20 keystream. It exists for reproducible fuzzing sessions — two
// ChaChaRand values built from the same seed replay byte-for-byte
// identically — using the ecosystem ChaCha20 stream cipher as the
// keystream source rather than a hand-rolled PRNG.
type ChaChaRand struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	pos    int
}

var _ mangle.RNG = (*ChaChaRand)(nil)

// NewChaChaRand derives a 256-bit key from seed (seed placed in the low
// 8 bytes, remainder zero) and returns a ChaChaRand over a zero nonce.
// This is a PRNG, not a cryptographic guarantee: the 24 zero key bytes
// mean ChaChaRand must never be used to generate secrets, only to drive
// a reproducible mutation sequence.
func NewChaChaRand(seed uint64) *ChaChaRand {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err) // only fails on malformed key/nonce sizes, which are fixed-size arrays here
	}
	return &ChaChaRand{cipher: c, pos: 64}
}

func (c *ChaChaRand) nextByte() byte {
	if c.pos >= len(c.buf) {
		var zero [64]byte
		c.cipher.XORKeyStream(c.buf[:], zero[:])
		c.pos = 0
	}
	b := c.buf[c.pos]
	c.pos++
	return b
}

func (c *ChaChaRand) nextUint64() uint64 {
	var b [8]byte
	for i := range b {
		b[i] = c.nextByte()
	}
	return binary.LittleEndian.Uint64(b[:])
}

// Get returns a value in [lo, hi] via modulo reduction of a keystream
// word; the resulting small bias is immaterial for mutation offsets and
// is the price of exact reproducibility from a seed.
func (c *ChaChaRand) Get(lo, hi int) int {
	if hi < lo {
		panic("rng: ChaChaRand.Get: hi < lo")
	}
	n := uint64(hi-lo) + 1
	return lo + int(c.nextUint64()%n)
}

func (c *ChaChaRand) Uint64() uint64 { return c.nextUint64() }

func (c *ChaChaRand) FillBytes(dst []byte) {
	for i := range dst {
		dst[i] = c.nextByte()
	}
}

func (c *ChaChaRand) FillPrintable(dst []byte) {
	for i := range dst {
		dst[i] = c.nextByte()%printableRange + printableLo
	}
}

func (c *ChaChaRand) Printable() byte {
	return c.nextByte()%printableRange + printableLo
}
