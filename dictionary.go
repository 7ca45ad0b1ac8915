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

// Dictionary is an ordered, read-only, positionally-indexable sequence of
// byte strings supplied by the caller (typically magic tokens extracted
// from the fuzz target). It must outlive the MangleContent call it is
// passed to.
//
// The interface is positional by index rather than by traversal: an
// intrusive linked-list walk is not an acceptable implementation
// strategy for At.
type Dictionary interface {
	// Len returns the number of entries.
	Len() int
	// At returns the entry at index i. Implementations should make this
	// O(1) or at worst O(i); it must never be a linked traversal from the
	// head on every call.
	At(i int) []byte
}
