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

// MangleContent is the core's single entry point. It applies one
// whole-buffer Resize, then stacks a uniform-random number of operator
// invocations (1..=MutationsPerRun) over run.Buf. A Run with
// MutationsPerRun == 0 is a no-op.
func MangleContent(run *Run) {
	if run.MutationsPerRun == 0 {
		return
	}

	opResize(run, run.OnlyPrintable)

	k := run.Rng.Get(1, run.MutationsPerRun)
	for i := 0; i < k; i++ {
		op := operatorTable[run.Rng.Get(0, len(operatorTable)-1)]
		op(run, run.OnlyPrintable)
	}
}
