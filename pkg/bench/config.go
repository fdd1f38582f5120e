// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package bench

import (
	"errors"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/zeebo/errs"

	"storj.io/layoutbench/internal/memory"
	"storj.io/layoutbench/pkg/layout"
)

// Config configures a benchmark run.
type Config struct {
	Dir string

	Records     int
	MinSize     memory.Size
	MaxSize     memory.Size
	ChunkSize   int
	RandomReads int
	Seed        int64

	WriteBuffer memory.Size
	Strategies  string

	Verify     bool
	Progress   bool
	Plot       string
	CPUProfile string
}

// DefaultConfig returns the configuration of the reference run: 100000
// records of 1KiB to 2KiB, 1000 records per chunk and 1000 random reads.
func DefaultConfig() Config {
	return Config{
		Dir:         "storage_test",
		Records:     100000,
		MinSize:     1 * memory.KiB,
		MaxSize:     2 * memory.KiB,
		ChunkSize:   1000,
		RandomReads: 1000,
		Seed:        42,
		WriteBuffer: 64 * memory.KiB,
		Strategies:  strings.Join(layout.Names, ","),
	}
}

// BindFlags adds bench flags to the flagset, using the current values as
// defaults.
func (config *Config) BindFlags(flag *flag.FlagSet) {
	flag.StringVar(&config.Dir, "dir", config.Dir, "storage root, wiped at the start of every run")

	flag.IntVar(&config.Records, "records", config.Records, "number of records in the corpus")
	flag.Var(&config.MinSize, "min-size", "minimum record size")
	flag.Var(&config.MaxSize, "max-size", "maximum record size")
	flag.IntVar(&config.ChunkSize, "chunk-size", config.ChunkSize, "records per chunk file")
	flag.IntVar(&config.RandomReads, "random-reads", config.RandomReads, "records read by the random read phase")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "seed for record lengths and random read samples")

	flag.Var(&config.WriteBuffer, "write-buffer", "write buffer size for the single and chunked layouts")
	flag.StringVar(&config.Strategies, "strategies", config.Strategies, "comma separated layouts to benchmark, in order")

	flag.BoolVar(&config.Verify, "verify", config.Verify, "compare every record read with the corpus, outside of the timed window")
	flag.BoolVar(&config.Progress, "progress", config.Progress, "show progress bars on stderr, updated outside of the timed window")
	flag.StringVar(&config.Plot, "plot", config.Plot, "write an svg plot of per-record latencies to this file")
	flag.StringVar(&config.CPUProfile, "cpuprofile", config.CPUProfile, "write cpu profile to file")
}

// VerifyFlags verifies whether the values provided are valid.
func (config *Config) VerifyFlags() error {
	var errlist errs.Group
	if config.Dir == "" {
		errlist.Add(errors.New("flag '--dir' is not set"))
	}
	if config.Records < 0 {
		errlist.Add(errors.New("flag '--records' must not be negative"))
	}
	if config.MinSize < 0 {
		errlist.Add(errors.New("flag '--min-size' must not be negative"))
	}
	if config.MinSize > config.MaxSize {
		errlist.Add(errors.New("flag '--min-size' must not be larger than '--max-size'"))
	}
	if config.ChunkSize <= 0 {
		errlist.Add(errors.New("flag '--chunk-size' must be positive"))
	}
	if config.RandomReads < 0 || config.RandomReads > config.Records {
		errlist.Add(errors.New("flag '--random-reads' must be between 0 and '--records'"))
	}
	if _, err := config.StrategyNames(); err != nil {
		errlist.Add(err)
	}
	return Error.Wrap(errlist.Err())
}

// StrategyNames returns the layouts to benchmark, in order.
func (config *Config) StrategyNames() ([]string, error) {
	var names []string
	seen := map[string]bool{}
	for _, name := range strings.Split(config.Strategies, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !isLayout(name) {
			return nil, Error.New("unknown strategy %q, expected one of %s", name, strings.Join(layout.Names, ", "))
		}
		if seen[name] {
			return nil, Error.New("strategy %q listed twice", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, Error.New("no strategies selected")
	}
	return names, nil
}

// LayoutOptions returns the options for creating the layouts.
func (config *Config) LayoutOptions() layout.Options {
	return layout.Options{
		ChunkSize:       config.ChunkSize,
		WriteBufferSize: config.WriteBuffer.Int(),
	}
}

func isLayout(name string) bool {
	for _, known := range layout.Names {
		if name == known {
			return true
		}
	}
	return false
}
