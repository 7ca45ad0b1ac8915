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

// SliceBuffer is a reference Buffer implementation backed by a single
// preallocated []byte of length MaxSize. It is the Buffer every test in
// this package exercises MangleContent against, and the one cmd/mangle
// uses for its corpus-file runs.
type SliceBuffer struct {
	data    []byte
	size    int
	maxSize int
}

// NewSliceBuffer returns a SliceBuffer seeded with the contents of seed
// (truncated to maxSize if necessary) and a hard ceiling of maxSize.
func NewSliceBuffer(seed []byte, maxSize int) *SliceBuffer {
	if maxSize < 1 {
		panic("mangle: NewSliceBuffer: maxSize must be >= 1")
	}
	if len(seed) > maxSize {
		seed = seed[:maxSize]
	}
	b := &SliceBuffer{
		data:    make([]byte, maxSize),
		size:    len(seed),
		maxSize: maxSize,
	}
	copy(b.data, seed)
	if b.size == 0 {
		// size must stay in [1, maxSize] at all times, even for an empty seed.
		b.size = 1
	}
	return b
}

func (b *SliceBuffer) Bytes() []byte  { return b.data }
func (b *SliceBuffer) Size() int      { return b.size }
func (b *SliceBuffer) MaxSize() int   { return b.maxSize }

// SetSize updates the logical size. The backing array is already
// MaxSize long, so this can never fail for n <= MaxSize.
func (b *SliceBuffer) SetSize(n int) {
	if n < 0 || n > b.maxSize {
		panic("mangle: SliceBuffer.SetSize: n out of [0, maxSize] range")
	}
	b.size = n
}
