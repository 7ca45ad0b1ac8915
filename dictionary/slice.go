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

// Package dictionary provides a reference mangle.Dictionary: an ordered,
// read-only, positionally-indexed list of byte strings. Loading entries
// from a file is the caller's concern — this package only holds entries
// already assembled in memory.
package dictionary

import "github.com/cirrusfuzz/mangle"

// Slice is an O(1)-indexed mangle.Dictionary backed by a [][]byte,
// avoiding the O(n) cost a linked-list traversal would impose on
// positional lookups.
type Slice [][]byte

var _ mangle.Dictionary = Slice(nil)

func (s Slice) Len() int          { return len(s) }
func (s Slice) At(i int) []byte   { return s[i] }

// FromLines builds a Slice from a set of newline-delimited token lines,
// skipping blank lines. This is the shape a caller-side file loader (out
// of the core's scope) would typically hand to the CLI after reading a
// dictionary file.
func FromLines(lines []string) Slice {
	var out Slice
	for _, l := range lines {
		if l == "" {
			continue
		}
		out = append(out, []byte(l))
	}
	return out
}
