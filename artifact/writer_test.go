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

package artifact

import (
	"os"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestSaveWritesDecodableArtifact(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	want := []byte("some mutated test case content, repeated. ")
	path, err := w.Save(want)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer dec.Close()

	got, err := dec.DecodeAll(raw, nil)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("round-trip mismatch: got %q, want %q", got, want)
	}
}

func TestSaveProducesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	p1, err := w.Save([]byte("a"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	p2, err := w.Save([]byte("b"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if p1 == p2 {
		t.Fatalf("Save produced the same path twice: %s", p1)
	}
}
