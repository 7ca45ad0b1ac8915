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

// Package artifact saves mutated buffers to disk for the reference CLI.
// Corpus storage is not part of the mutation core; this is the thin
// caller-side piece that a real fuzzing setup built around mangle would
// still need, wrapping a third-party compression codec.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Writer compresses and names mutated buffers before writing them under
// a directory, using one zstd encoder per Writer (not safe for
// concurrent use — callers running a worker pool need one Writer per
// goroutine, the same granularity as one mangle.Run per goroutine).
type Writer struct {
	dir string
	enc *zstd.Encoder
}

// New returns a Writer rooted at dir. dir must already exist.
func New(dir string) (*Writer, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("artifact: building zstd encoder: %w", err)
	}
	return &Writer{dir: dir, enc: enc}, nil
}

// Close releases the Writer's encoder.
func (w *Writer) Close() error {
	return w.enc.Close()
}

// Save compresses buf and writes it to a freshly-named file under the
// Writer's directory, returning the path written.
func (w *Writer) Save(buf []byte) (string, error) {
	compressed := w.enc.EncodeAll(buf, nil)
	name := uuid.New().String() + ".zst"
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, compressed, 0o640); err != nil {
		return "", fmt.Errorf("artifact: writing %s: %w", path, err)
	}
	return path, nil
}
