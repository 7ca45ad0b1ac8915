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

// Package fingerprint hashes mutated buffers for corpus deduplication in
// the reference CLI. It is not used by the mangle core itself — corpus
// storage and selection are the caller's concern — but a realistic
// caller around the core needs some way to tell "have I saved this
// mutant before".
package fingerprint

import "github.com/dchest/siphash"

// Keyed holds the 128-bit siphash key used to fingerprint mutated
// buffers for a single fuzzing session.
type Keyed struct {
	k0, k1 uint64
}

// New derives a Keyed fingerprinter from a session seed. Two Keyed
// values built from the same seed produce identical fingerprints for
// identical buffers, which matters when comparing dedup results across
// re-run sessions.
func New(seed uint64) Keyed {
	return Keyed{k0: seed, k1: ^seed}
}

// Sum128 returns the 128-bit siphash of buf.
func (f Keyed) Sum128(buf []byte) (uint64, uint64) {
	return siphash.Hash128(f.k0, f.k1, buf)
}
