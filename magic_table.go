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

// magicEntry is one row of the fixed magic-constant table. data[:width]
// is the meaningful byte sequence; the remainder of the backing array
// is unused padding.
type magicEntry struct {
	data  [8]byte
	width int
}

// baseValues is the set of "interesting" single-byte boundary constants
// shared across all widths: small integers 1..16, powers of two and
// neighbors, and the signed-byte extrema. It underlies both the width-1
// table and the zero-extended entries of the wider tables.
var baseValues = []byte{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	0x20, 0x40, 0x7E, 0x7F, 0x80, 0x81, 0xC0, 0xFE, 0xFF,
}

// magicTable is the module-level, read-only, order-stable magic table.
// It is built once (never mutated after package init) from baseValues
// plus the fixed set of repeated-byte and signed-extremum patterns — a
// pure value with no lifecycle concerns, safe to share across every
// concurrent Run.
var magicTable = buildMagicTable()

func entry1(b byte) magicEntry {
	var e magicEntry
	e.width = 1
	e.data[0] = b
	return e
}

func entryFromBytes(bs []byte) magicEntry {
	var e magicEntry
	e.width = len(bs)
	copy(e.data[:], bs)
	return e
}

func reversed(bs []byte) []byte {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[len(bs)-1-i] = b
	}
	return out
}

// repeatedByte builds a width-w entry consisting of w copies of b: the
// all-0x01/0x80/0xFF repetitions, plus the all-zero baseline.
func repeatedByte(width int, b byte) []byte {
	bs := make([]byte, width)
	for i := range bs {
		bs[i] = b
	}
	return bs
}

// zeroExtend big-endian-encodes v into a width-byte value: width-1 leading
// zero bytes followed by v (e.g. width 2: 0001..0010, 0020, ... 00FF).
func zeroExtend(width int, v byte) []byte {
	bs := make([]byte, width)
	bs[width-1] = v
	return bs
}

// signedExtremumPatterns reproduces the five neighbor-of-signed-extremum
// shapes at width 2 (7EFF, 7FFF, 8000, 8001, FFFE) generalized to width
// w: a marker byte at one end of the value with the remaining bytes
// forming the natural continuation of that extremum (all-0xFF,
// all-0x00, or all-0xFF-but-the-last-byte).
func signedExtremumPatterns(width int) [][]byte {
	ff := func(n int) []byte {
		bs := make([]byte, n)
		for i := range bs {
			bs[i] = 0xFF
		}
		return bs
	}
	zero := func(n int) []byte { return make([]byte, n) }

	v1 := append([]byte{0x7E}, ff(width-1)...) // 0x7E…FF : "7E…"
	v2 := append([]byte{0x7F}, ff(width-1)...) // 0x7F…FF : "7F…"
	v3 := append([]byte{0x80}, zero(width-1)...)                  // 0x80…00 : "80…"
	v4 := append(append([]byte{0x80}, zero(width-2)...), 0x01)    // 0x80…01 : "80…01"
	v5 := append(ff(width-1), 0xFE)                               // 0xFF…FE : "FE…"

	return [][]byte{v1, v2, v3, v4, v5}
}

// buildWidthN builds the 64 entries (4 neutral + 30 big-endian + 30
// little-endian) for width w in {2, 4, 8}.
func buildWidthN(width int) []magicEntry {
	var out []magicEntry

	// four neutral-endian entries: palindromic under byte reversal.
	for _, b := range []byte{0x00, 0x01, 0x80, 0xFF} {
		out = append(out, entryFromBytes(repeatedByte(width, b)))
	}

	var be [][]byte
	for _, v := range baseValues {
		be = append(be, zeroExtend(width, v))
	}
	be = append(be, signedExtremumPatterns(width)...)

	for _, bs := range be {
		out = append(out, entryFromBytes(bs))
	}
	for _, bs := range be {
		out = append(out, entryFromBytes(reversed(bs)))
	}
	return out
}

func buildMagicTable() []magicEntry {
	var t []magicEntry

	// width 1: no endianness to speak of; 00 plus the 25 base values (26
	// entries total).
	t = append(t, entry1(0x00))
	for _, v := range baseValues {
		t = append(t, entry1(v))
	}

	for _, w := range []int{2, 4, 8} {
		t = append(t, buildWidthN(w)...)
	}
	return t
}
