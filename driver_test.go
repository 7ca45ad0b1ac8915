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
	"bytes"
	"testing"
)

// fakeRNG is a scripted RNG stub: each Get call consumes the next value
// from a fixed queue, panicking if the queue underflows (which would
// mean a test's script no longer matches the operator's call sequence).
// Fill* calls are not scripted since boundary scenarios only pin down
// values consumed via Get/Uint64.
type fakeRNG struct {
	gets  []int
	pos   int
	u64   []uint64
	upos  int
	fillB byte
}

func (f *fakeRNG) Get(lo, hi int) int {
	if f.pos >= len(f.gets) {
		panic("fakeRNG: Get called beyond scripted values")
	}
	v := f.gets[f.pos]
	f.pos++
	if v < lo || v > hi {
		panic("fakeRNG: scripted value out of requested range")
	}
	return v
}

func (f *fakeRNG) Uint64() uint64 {
	if f.upos >= len(f.u64) {
		panic("fakeRNG: Uint64 called beyond scripted values")
	}
	v := f.u64[f.upos]
	f.upos++
	return v
}

func (f *fakeRNG) FillBytes(dst []byte) {
	for i := range dst {
		dst[i] = f.fillB
	}
}

func (f *fakeRNG) FillPrintable(dst []byte) {
	for i := range dst {
		dst[i] = printableLo
	}
}

func (f *fakeRNG) Printable() byte { return printableLo }

// simpleDict is a minimal Dictionary for tests that need a non-empty
// dictionary without reaching for the dictionary package (which imports
// this one).
type simpleDict [][]byte

func (d simpleDict) Len() int        { return len(d) }
func (d simpleDict) At(i int) []byte { return d[i] }

func newRun(buf *SliceBuffer, rng RNG, dict Dictionary) *Run {
	return &Run{Buf: buf, Rng: rng, Dict: dict, MutationsPerRun: 6}
}

func TestBoundaryBit(t *testing.T) {
	buf := NewSliceBuffer([]byte{0x00}, 1)
	rng := &fakeRNG{gets: []int{0, 3}} // off=0, bitIdx=3
	run := newRun(buf, rng, nil)

	opBit(run, false)

	if got := buf.Bytes()[0]; got != 0x08 {
		t.Fatalf("opBit: got %#02x, want 0x08", got)
	}
}

func TestBoundaryAddSubLittleEndian(t *testing.T) {
	buf := NewSliceBuffer([]byte{0x10, 0x20, 0x30, 0x40}, 4)
	// off=0, width index 2 (addSubWidths[2] == 4), rawDelta=4097 (delta=+1), foreign=0
	rng := &fakeRNG{gets: []int{0, 2, 4097, 0}}
	run := newRun(buf, rng, nil)

	opAddSub(run, false)

	want := []byte{0x11, 0x20, 0x30, 0x40}
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("opAddSub (LE): got %x, want %x", got, want)
	}
}

func TestBoundaryAddSubForeignEndian(t *testing.T) {
	// A non-symmetric input so the foreign-endian byte-swap path is
	// actually exercised (the little-endian scenario above is
	// swap-invariant and wouldn't catch a broken byte-swap).
	buf := NewSliceBuffer([]byte{0x01, 0x02, 0x03, 0x04}, 4)
	rng := &fakeRNG{gets: []int{0, 2, 4097, 1}} // foreign=1
	run := newRun(buf, rng, nil)

	opAddSub(run, false)

	want := []byte{0x01, 0x02, 0x03, 0x05}
	if got := buf.Bytes(); !bytes.Equal(got, want) {
		t.Fatalf("opAddSub (foreign-endian): got %x, want %x", got, want)
	}
}

func TestBoundaryExpandAtMaxSize(t *testing.T) {
	seed := []byte{1, 2, 3, 4}
	buf := NewSliceBuffer(seed, 4) // size == maxSize already
	rng := &fakeRNG{gets: []int{1, 2}}
	run := newRun(buf, rng, nil)

	opExpand(run, false)

	if buf.Size() != 4 {
		t.Fatalf("opExpand at maxSize: size changed to %d, want 4", buf.Size())
	}
	if got := buf.Bytes()[:4]; !bytes.Equal(got, seed) {
		t.Fatalf("opExpand at maxSize: buffer changed: got %x, want %x", got, seed)
	}
}

func TestBoundaryShrink(t *testing.T) {
	buf := NewSliceBuffer([]byte{0xAA, 0xBB}, 2)
	rng := &fakeRNG{gets: []int{1, 0}} // len=1, off=0
	run := newRun(buf, rng, nil)

	opShrink(run, false)

	if buf.Size() != 1 {
		t.Fatalf("opShrink: size = %d, want 1", buf.Size())
	}
	if got := buf.Bytes()[0]; got != 0xBB {
		t.Fatalf("opShrink: buffer[0] = %#02x, want pre-state buffer[1] = 0xBB", got)
	}
}

func TestBoundaryIncBytePrintableWrap(t *testing.T) {
	buf := NewSliceBuffer([]byte{0x7E}, 1)
	rng := &fakeRNG{gets: []int{0}} // off=0
	run := newRun(buf, rng, nil)

	opIncByte(run, true)

	if got := buf.Bytes()[0]; got != 0x20 {
		t.Fatalf("opIncByte printable wrap: got %#02x, want 0x20", got)
	}
}

func TestBoundaryDictionaryInsert(t *testing.T) {
	buf := NewSliceBuffer([]byte("xxxxx"), 8)
	dict := simpleDict{[]byte("ABC")}
	rng := &fakeRNG{gets: []int{0, 2}} // dict index=0, off=2
	run := newRun(buf, rng, dict)

	opDictionaryInsert(run, false)

	if buf.Size() != 8 {
		t.Fatalf("opDictionaryInsert: size = %d, want 8", buf.Size())
	}
	if got := string(buf.Bytes()[:8]); got != "xxABCxxx" {
		t.Fatalf("opDictionaryInsert: buffer = %q, want %q", got, "xxABCxxx")
	}
}

func TestMangleContentZeroMutationsIsNoop(t *testing.T) {
	seed := []byte("hello world")
	buf := NewSliceBuffer(seed, 64)
	// No scripted values at all: any Rng.Get call would panic, which
	// would itself fail the test and prove MangleContent consulted the
	// RNG when it must not.
	rng := &fakeRNG{}
	run := &Run{Buf: buf, Rng: rng, MutationsPerRun: 0}

	MangleContent(run)

	if buf.Size() != len(seed) {
		t.Fatalf("MutationsPerRun=0: size changed to %d, want %d", buf.Size(), len(seed))
	}
	if got := buf.Bytes()[:len(seed)]; !bytes.Equal(got, seed) {
		t.Fatalf("MutationsPerRun=0: buffer changed: got %q, want %q", got, seed)
	}
}
