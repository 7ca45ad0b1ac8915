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

// Command mangle is a reference harness around the mangle core: for
// every file in an input directory it runs a fixed number of
// MangleContent rounds and saves each distinct mutant it produces. It
// demonstrates wiring the library, not a production fuzzing harness —
// test-case dispatch, coverage feedback, and process supervision are
// all out of scope.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sys/cpu"

	"github.com/cirrusfuzz/mangle"
	"github.com/cirrusfuzz/mangle/artifact"
	"github.com/cirrusfuzz/mangle/config"
	"github.com/cirrusfuzz/mangle/dictionary"
	"github.com/cirrusfuzz/mangle/fingerprint"
	"github.com/cirrusfuzz/mangle/rng"
)

var (
	dashin     string
	dashout    string
	dashdict   string
	dashconfig string
	dashrounds int
)

var cfg = config.Default()

func init() {
	flag.StringVar(&dashin, "in", "", "directory of seed files to mutate (required)")
	flag.StringVar(&dashout, "out", "", "directory to save mutants into (required)")
	flag.StringVar(&dashdict, "dict", "", "optional newline-delimited dictionary file")
	flag.StringVar(&dashconfig, "config", "", "optional YAML file overriding the default Config")
	flag.IntVar(&dashrounds, "rounds", 100, "MangleContent rounds per seed file")
	cfg.RegisterFlags(flag.CommandLine)
}

func exit(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func main() {
	flag.Parse()
	if dashin == "" || dashout == "" {
		exit(fmt.Errorf("mangle: -in and -out are required"))
	}
	// A -config file overrides every field it sets to a non-zero value,
	// including fields also given explicitly on the command line: when
	// both are given, the file wins. Good enough for a reference CLI.
	if dashconfig != "" {
		if err := cfg.MergeFile(dashconfig); err != nil {
			exit(err)
		}
	}

	dict := dictionary.Slice(nil)
	if dashdict != "" {
		lines, err := readLines(dashdict)
		if err != nil {
			exit(err)
		}
		dict = dictionary.FromLines(lines)
	}

	// golang.org/x/crypto/chacha20's keystream loop only gets its
	// vectorized path on AVX2-or-better hardware; on anything older it
	// falls back to a scalar Go loop that is slower per mutation round
	// than math/rand. Pick the RNG source accordingly instead of paying
	// for unaccelerated ChaCha20 on every lane.
	chachaFast := cpu.X86.HasAVX2 || cpu.X86.HasAVX512F
	log.Printf("mangle: AVX2=%v AVX512=%v rng=%s rounds=%d mutationsPerRun=%d onlyPrintable=%v",
		cpu.X86.HasAVX2, cpu.X86.HasAVX512F, rngName(chachaFast), dashrounds, cfg.MutationsPerRun, cfg.OnlyPrintable)

	entries, err := os.ReadDir(dashin)
	if err != nil {
		exit(err)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i, e := range entries {
		if e.IsDir() {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string) {
			defer wg.Done()
			defer func() { <-sem }()
			if err := runFile(filepath.Join(dashin, name), cfg, dict, uint64(i), chachaFast); err != nil {
				log.Printf("mangle: %s: %v", name, err)
			}
		}(i, e.Name())
	}
	wg.Wait()
}

func rngName(chachaFast bool) string {
	if chachaFast {
		return "chacha20"
	}
	return "math"
}

func readLines(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mangle: reading dictionary %s: %w", path, err)
	}
	var lines []string
	start := 0
	for i, b := range raw {
		if b == '\n' {
			lines = append(lines, string(raw[start:i]))
			start = i + 1
		}
	}
	if start < len(raw) {
		lines = append(lines, string(raw[start:]))
	}
	return lines, nil
}

// runFile mutates one seed file for dashrounds rounds, saving every
// mutant whose fingerprint has not been seen before in this run. Each
// goroutine owns a disjoint buffer, RNG, and fingerprinter so that
// concurrent runs never share mutable state.
func runFile(path string, cfg config.Config, dict dictionary.Slice, laneSeed uint64, chachaFast bool) error {
	seed, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	w, err := artifact.New(dashout)
	if err != nil {
		return err
	}
	defer w.Close()

	seedSource := cfg.Seed
	if seedSource == 0 {
		seedSource = laneSeed + 1
	}
	var source mangle.RNG
	if chachaFast {
		source = rng.NewChaChaRand(seedSource ^ laneSeed)
	} else {
		source = rng.NewMathRand(int64(seedSource ^ laneSeed))
	}
	fp := fingerprint.New(seedSource)

	buf := mangle.NewSliceBuffer(seed, cfg.MaxFileSize)
	run := &mangle.Run{
		Buf:             buf,
		Rng:             source,
		Dict:            dict,
		MutationsPerRun: cfg.MutationsPerRun,
		OnlyPrintable:   cfg.OnlyPrintable,
	}

	seen := make(map[[2]uint64]bool)
	for i := 0; i < dashrounds; i++ {
		mangle.MangleContent(run)
		mutant := buf.Bytes()[:buf.Size()]
		k0, k1 := fp.Sum128(mutant)
		key := [2]uint64{k0, k1}
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, err := w.Save(mutant); err != nil {
			return err
		}
	}
	return nil
}
