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

// Package config assembles the mangle.Run configuration constants
// (MaxFileSize, MutationsPerRun, OnlyPrintable, Seed) the way the
// reference CLI loads them: flags first, then an optional YAML override
// file, using a dash-prefixed flag-var style.
package config

import (
	"flag"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config holds the knobs a mangle.Run needs beyond its Buffer, RNG, and
// Dictionary.
type Config struct {
	MaxFileSize     int    `json:"maxFileSize"`
	MutationsPerRun int    `json:"mutationsPerRun"`
	OnlyPrintable   bool   `json:"onlyPrintable"`
	Seed            uint64 `json:"seed"`
}

// Default returns the out-of-the-box Config: a 1 MiB ceiling and up to
// 6 stacked mutations per call.
func Default() Config {
	return Config{
		MaxFileSize:     1 << 20,
		MutationsPerRun: 6,
		OnlyPrintable:   false,
		Seed:            0,
	}
}

// RegisterFlags binds c's fields to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.MaxFileSize, "max-file-size", c.MaxFileSize, "hard ceiling on mutated buffer size")
	fs.IntVar(&c.MutationsPerRun, "mutations-per-run", c.MutationsPerRun, "ceiling on stacked operators per mangle call")
	fs.BoolVar(&c.OnlyPrintable, "only-printable", c.OnlyPrintable, "constrain mutated bytes to printable ASCII")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "deterministic RNG seed (0 derives a seed from each input file's position in the directory)")
}

// MergeFile overlays fields present in the YAML file at path onto c.
// Only fields explicitly set in the file are overridden — zero-value
// JSON fields are indistinguishable from "not set" here by design, since
// this CLI has no use for an explicit "reset to zero" override.
func (c *Config) MergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	var overlay Config
	if err := yaml.Unmarshal(raw, &overlay); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if overlay.MaxFileSize != 0 {
		c.MaxFileSize = overlay.MaxFileSize
	}
	if overlay.MutationsPerRun != 0 {
		c.MutationsPerRun = overlay.MutationsPerRun
	}
	if overlay.OnlyPrintable {
		c.OnlyPrintable = overlay.OnlyPrintable
	}
	if overlay.Seed != 0 {
		c.Seed = overlay.Seed
	}
	return nil
}
