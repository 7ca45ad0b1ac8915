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

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strconv"

	"github.com/cirrusfuzz/mangle/ints"
)

// opBit flips one of 8 bits in a single byte.
func opBit(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	bitIdx := r.Rng.Get(0, 7)
	buf := r.bytes()
	region := buf[off : off+1]
	ints.FlipBit[byte](region, bitIdx)
	if printable {
		turnToPrintable(region)
	}
}

// opBytes overwrites 1..=8 bytes at a random offset with a prefix of an
// 8-byte random scratch buffer, clamped to the buffer tail by overwrite.
func opBytes(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	var scratch [8]byte
	if printable {
		r.Rng.FillPrintable(scratch[:])
	} else {
		r.Rng.FillBytes(scratch[:])
	}
	n := r.Rng.Get(1, 8)
	overwrite(r, scratch[:n], off, n)
}

// opMagic overwrites at a random offset with one entry of the magic
// constant table.
func opMagic(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	e := magicTable[r.Rng.Get(0, len(magicTable)-1)]
	overwrite(r, e.data[:e.width], off, e.width)
	projectWritten(r, off, e.width, printable)
}

// projectWritten re-projects buffer[off : off+n) (clamped to the current
// size) onto the printable range. Used by operators whose written region
// may have been truncated by overwrite's tail clamp.
func projectWritten(r *Run, off, n int, printable bool) {
	if !printable {
		return
	}
	size := r.size()
	n = ints.Clamp(n, 0, size-off)
	if n <= 0 {
		return
	}
	turnToPrintable(r.bytes()[off : off+n])
}

// opIncByte increments buffer[off]. Non-printable mode wraps mod 256;
// printable mode uses the modular bijection on [32,126].
func opIncByte(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	buf := r.bytes()
	if printable {
		b := buf[off]
		buf[off] = byte((int(b)-printableLo+1)%printableRange) + printableLo
	} else {
		buf[off]++
	}
}

// opDecByte decrements buffer[off].
func opDecByte(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	buf := r.bytes()
	if printable {
		b := buf[off]
		buf[off] = byte((int(b)-printableLo+printableRange-1)%printableRange) + printableLo
	} else {
		buf[off]--
	}
}

// opNegByte bitwise-complements buffer[off] in non-printable mode, or
// applies the printable-range negation bijection.
func opNegByte(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	buf := r.bytes()
	if printable {
		b := buf[off]
		buf[off] = byte((printableRange-1)-(int(b)-printableLo)) + printableLo
	} else {
		buf[off] = ^buf[off]
	}
}

// addSubWidths is the fixed set of widths AddSub draws from.
var addSubWidths = [4]int{1, 2, 4, 8}

// opAddSub performs little-endian or foreign-endian signed add/sub
// arithmetic over a random 1/2/4/8-byte window.
func opAddSub(r *Run, printable bool) {
	size := r.size()
	off := r.Rng.Get(0, size-1)
	w := addSubWidths[r.Rng.Get(0, len(addSubWidths)-1)]
	if size-off < w {
		w = 1
	}
	delta := int64(r.Rng.Get(0, 8192)) - 4096
	foreign := r.Rng.Get(0, 1) == 1

	buf := r.bytes()
	region := buf[off : off+w]

	switch w {
	case 1:
		v := int64(int8(region[0])) + delta
		region[0] = byte(v)
	case 2:
		u := binary.LittleEndian.Uint16(region)
		if foreign {
			u = bits.ReverseBytes16(u)
		}
		v := int64(int16(u)) + delta
		u = uint16(v)
		if foreign {
			u = bits.ReverseBytes16(u)
		}
		binary.LittleEndian.PutUint16(region, u)
	case 4:
		u := binary.LittleEndian.Uint32(region)
		if foreign {
			u = bits.ReverseBytes32(u)
		}
		v := int64(int32(u)) + delta
		u = uint32(v)
		if foreign {
			u = bits.ReverseBytes32(u)
		}
		binary.LittleEndian.PutUint32(region, u)
	case 8:
		u := binary.LittleEndian.Uint64(region)
		if foreign {
			u = bits.ReverseBytes64(u)
		}
		v := int64(u) + delta
		u = uint64(v)
		if foreign {
			u = bits.ReverseBytes64(u)
		}
		binary.LittleEndian.PutUint64(region, u)
	default:
		panic(fmt.Sprintf("mangle: addsub: unreachable width %d", w))
	}

	if printable {
		turnToPrintable(region)
	}
}

// opCloneByte swaps the bytes at two random offsets.
func opCloneByte(r *Run, printable bool) {
	size := r.size()
	off1 := r.Rng.Get(0, size-1)
	off2 := r.Rng.Get(0, size-1)
	buf := r.bytes()
	buf[off1], buf[off2] = buf[off2], buf[off1]
}

// opMemMove moves a random-length window within the buffer. The length
// is drawn uniform in [0, size], wider than what move() will ultimately
// honor; the wide draw is kept so the offset/length distribution stays
// uniform over the operator's nominal range even though move() clamps
// the effective length at the tail.
func opMemMove(r *Run, printable bool) {
	size := r.size()
	from := r.Rng.Get(0, size-1)
	to := r.Rng.Get(0, size-1)
	length := r.Rng.Get(0, size)
	move(r, from, to, length)
}

// opMemSet fills a random window with one repeated byte value.
func opMemSet(r *Run, printable bool) {
	size := r.size()
	off := r.Rng.Get(0, size-1)
	sz := r.Rng.Get(1, size-off)
	var v byte
	if printable {
		v = r.Rng.Printable()
	} else {
		v = byte(r.Rng.Get(0, 255))
	}
	buf := r.bytes()
	region := buf[off : off+sz]
	for i := range region {
		region[i] = v
	}
}

// opRandom fills a random window with random bytes, same off/len
// distribution as MemSet.
func opRandom(r *Run, printable bool) {
	size := r.size()
	off := r.Rng.Get(0, size-1)
	sz := r.Rng.Get(1, size-off)
	region := r.bytes()[off : off+sz]
	if printable {
		r.Rng.FillPrintable(region)
	} else {
		r.Rng.FillBytes(region)
	}
}

// opDictionary overwrites at a random offset with a dictionary entry,
// falling back to Bit when the dictionary is empty.
func opDictionary(r *Run, printable bool) {
	if r.Dict == nil || r.Dict.Len() == 0 {
		opBit(r, printable)
		return
	}
	i := r.Rng.Get(0, r.Dict.Len()-1)
	entry := r.Dict.At(i)
	off := r.Rng.Get(0, r.size()-1)
	overwrite(r, entry, off, len(entry))
	projectWritten(r, off, len(entry), printable)
}

// opDictionaryInsert grows the buffer to make room for a dictionary
// entry and splices it in, falling back to Bit when the dictionary is
// empty.
func opDictionaryInsert(r *Run, printable bool) {
	if r.Dict == nil || r.Dict.Len() == 0 {
		opBit(r, printable)
		return
	}
	i := r.Rng.Get(0, r.Dict.Len()-1)
	entry := r.Dict.At(i)
	off := r.Rng.Get(0, r.size()-1)
	inflate(r, off, len(entry), printable)
	overwrite(r, entry, off, len(entry))
	projectWritten(r, off, len(entry), printable)
}

// opExpand grows the buffer at a random offset by a random length.
func opExpand(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	length := r.Rng.Get(1, r.size()-off)
	inflate(r, off, length, printable)
}

// opShrink removes a random window from the buffer.
//
// This shifts the post-window tail leftward directly rather than
// through the move() primitive: move()'s "never touch the final tail
// byte" exclusion (see primitives.go), applied here, would make Shrink a
// no-op whenever the removed window
// reaches the buffer's final byte — e.g. size=2, off=0, len=1, where the
// shift target is exactly that last index. The direct copy below is the
// literal "shift tail leftward over the removed window" behavior.
func opShrink(r *Run, printable bool) {
	size := r.size()
	if size <= 1 {
		return
	}
	length := r.Rng.Get(1, size-1)
	off := r.Rng.Get(0, length)

	tail := size - (off + length)
	if tail > 0 {
		buf := r.bytes()
		copy(buf[off:off+tail], buf[off+length:off+length+tail])
	}
	r.Buf.SetSize(size - length)
}

// opASCIIVal overwrites at a random offset with the decimal ASCII
// rendering of a random signed 64-bit value, clamped to the buffer tail.
// Decimal digits and the minus sign are already printable, so no
// projection step is required.
func opASCIIVal(r *Run, printable bool) {
	off := r.Rng.Get(0, r.size()-1)
	v := int64(r.Rng.Uint64())
	s := strconv.FormatInt(v, 10)
	overwrite(r, []byte(s), off, len(s))
}

// opResize is the driver-only whole-buffer resize applied once at the
// start of MangleContent.
func opResize(r *Run, printable bool) {
	size := r.size()
	maxSize := r.maxSize()
	v := r.Rng.Get(0, 16)

	var newSize int
	switch {
	case v == 0:
		newSize = r.Rng.Get(1, maxSize)
	case v >= 1 && v <= 8:
		newSize = size + v
	case v >= 9 && v <= 16:
		newSize = size + 8 - v
	default:
		panic(fmt.Sprintf("mangle: resize: unreachable draw %d", v))
	}
	newSize = ints.Clamp(newSize, 1, maxSize)

	r.Buf.SetSize(newSize)
	if newSize > size {
		tail := r.bytes()[size:newSize]
		if printable {
			r.Rng.FillPrintable(tail)
		} else {
			r.Rng.FillBytes(tail)
		}
	}
}

// operatorTable is the fixed, order-stable set of 16 stackable operators
// (excludes the driver-only Resize); each is selected with uniform
// probability per stacked step.
var operatorTable = [16]func(*Run, bool){
	opBit,
	opBytes,
	opMagic,
	opIncByte,
	opDecByte,
	opNegByte,
	opAddSub,
	opCloneByte,
	opMemMove,
	opMemSet,
	opRandom,
	opDictionary,
	opDictionaryInsert,
	opExpand,
	opShrink,
	opASCIIVal,
}
