// Copyright (C) 2023 Sneller, Inc.
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

package fingerprint

import "testing"

func TestSum128IsDeterministicForSameSeed(t *testing.T) {
	a := New(1)
	b := New(1)

	k0a, k1a := a.Sum128([]byte("hello world"))
	k0b, k1b := b.Sum128([]byte("hello world"))

	if k0a != k0b || k1a != k1b {
		t.Fatal("same seed and input produced different fingerprints")
	}
}

func TestSum128DiffersAcrossSeeds(t *testing.T) {
	a := New(1)
	b := New(2)

	k0a, k1a := a.Sum128([]byte("same input"))
	k0b, k1b := b.Sum128([]byte("same input"))

	if k0a == k0b && k1a == k1b {
		t.Fatal("different seeds produced identical fingerprints")
	}
}

func TestSum128DiffersAcrossInputs(t *testing.T) {
	f := New(5)

	k0a, k1a := f.Sum128([]byte("input one"))
	k0b, k1b := f.Sum128([]byte("input two"))

	if k0a == k0b && k1a == k1b {
		t.Fatal("different inputs produced identical fingerprints")
	}
}
