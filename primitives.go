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

import "github.com/cirrusfuzz/mangle/ints"

// overwrite copies up to sz bytes from src into buffer[off:], clamping sz
// to size-off. src may alias the buffer (overlap is handled via copy's
// memmove semantics). Never grows the buffer.
func overwrite(r *Run, src []byte, off, sz int) {
	size := r.size()
	if off >= size {
		return
	}
	sz = ints.Clamp(sz, 0, size-off)
	sz = ints.Min(sz, len(src))
	if sz <= 0 {
		return
	}
	buf := r.bytes()
	copy(buf[off:off+sz], src[:sz])
}

// move copies len bytes from buffer[from:] to buffer[to:] in place,
// overlap-safe. It is a no-op if either from or to already sits at or
// past the end of the buffer. len is clamped to
// min(size-from-1, size-to-1), so move never reads or writes the
// buffer's final byte.
func move(r *Run, from, to, length int) {
	size := r.size()
	if from >= size || to >= size {
		return
	}
	length = ints.Clamp(length, 0, ints.Min(size-from-1, size-to-1))
	if length <= 0 {
		return
	}
	buf := r.bytes()
	copy(buf[to:to+length], buf[from:from+length])
}

// inflate grows the buffer by up to length bytes (clamped to
// maxSize-size) at offset off, shifting the existing tail rightward and
// filling the new gap with random bytes (printable-projected if
// requested). It is a no-op when the buffer already sits at MaxSize.
func inflate(r *Run, off, length int, printable bool) {
	size := r.size()
	maxSize := r.maxSize()
	length = ints.Clamp(length, 0, maxSize-size)
	if length <= 0 {
		return
	}
	newSize := size + length
	r.Buf.SetSize(newSize)
	// shift buffer[off:size) rightward by length; move() operates against
	// the *new*, larger size, so reimplement the shift directly here
	// rather than through move (which would clamp against the post-grow
	// size and refuse to touch the final tail byte, the exact region we
	// need to populate).
	buf := r.bytes()
	if off < size {
		copy(buf[off+length:newSize], buf[off:size])
	}
	gap := buf[off : off+length]
	if printable {
		r.Rng.FillPrintable(gap)
	} else {
		r.Rng.FillBytes(gap)
	}
}
