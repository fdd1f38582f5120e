// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package bench times the write, sequential read and random read phases
// of every layout over one generated corpus.
package bench

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/loov/hrtime"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"storj.io/layoutbench/internal/memory"
	"storj.io/layoutbench/pkg/corpus"
	"storj.io/layoutbench/pkg/layout"
)

var mon = monkit.Package()

// Error is the default error class for the package.
var Error = errs.Class("bench")

// Bench benchmarks on-disk layouts.
type Bench struct {
	log     *zap.Logger
	config  Config
	layouts []layout.Layout

	// ProgressOutput receives progress bars when Config.Progress is set.
	ProgressOutput io.Writer
}

// New creates a benchmark for config.
func New(log *zap.Logger, config Config) (*Bench, error) {
	if err := config.VerifyFlags(); err != nil {
		return nil, err
	}

	names, err := config.StrategyNames()
	if err != nil {
		return nil, err
	}

	bench := &Bench{
		log:            log,
		config:         config,
		ProgressOutput: os.Stderr,
	}
	for _, name := range names {
		l, err := layout.New(name, config.Dir, config.LayoutOptions())
		if err != nil {
			return nil, Error.Wrap(err)
		}
		bench.layouts = append(bench.layouts, l)
	}
	return bench, nil
}

// Layouts returns the layouts in benchmark order.
func (bench *Bench) Layouts() []layout.Layout { return bench.layouts }

// Run wipes the storage root, generates the corpus and runs every phase
// of every layout in sequence. The first failure aborts the run.
func (bench *Bench) Run(ctx context.Context) (_ *Report, err error) {
	defer mon.Task()(&ctx)(&err)

	if bench.config.CPUProfile != "" {
		stop, profileErr := startCPUProfile(bench.config.CPUProfile)
		if profileErr != nil {
			return nil, profileErr
		}
		defer func() { err = errs.Combine(err, stop()) }()
	}

	if err := layout.ResetDir(bench.config.Dir); err != nil {
		return nil, Error.New("reset storage root: %v", err)
	}

	start := time.Now()
	records, err := corpus.Generate(bench.rng(), bench.config.Records, bench.config.MinSize.Int(), bench.config.MaxSize.Int())
	if err != nil {
		return nil, Error.Wrap(err)
	}
	bench.log.Info("corpus generated",
		zap.Int("records", records.Len()),
		zap.Stringer("size", memory.Size(records.TotalSize())),
		zap.Duration("elapsed", time.Since(start)))

	report := &Report{
		Records: records.Len(),
		Bytes:   records.TotalSize(),
	}
	for _, l := range bench.layouts {
		results, err := bench.runLayout(ctx, l, records)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, results...)
	}

	if bench.config.Plot != "" {
		if err := Plot(bench.config.Plot, report); err != nil {
			return nil, err
		}
		bench.log.Info("plot written", zap.String("path", bench.config.Plot))
	}

	return report, nil
}

// rng returns a generator seeded with the configured seed. Every phase
// gets its own so that all layouts read the same sample.
func (bench *Bench) rng() *rand.Rand {
	return rand.New(rand.NewSource(bench.config.Seed))
}

func (bench *Bench) runLayout(ctx context.Context, l layout.Layout, records corpus.Corpus) ([]Result, error) {
	write, err := bench.measure(ctx, l, PhaseWrite, records, records.Len(), func(visit layout.Visit) error {
		return l.Write(ctx, records, visit)
	})
	if err != nil {
		return nil, err
	}
	bench.log.Debug("layout written", zap.String("strategy", l.Name()), zap.String("dir", l.Dir()))

	sequential := corpus.Sequential(records.Len())
	seq, err := bench.measure(ctx, l, PhaseSequential, records, len(sequential), func(visit layout.Visit) error {
		return l.Read(ctx, sequential, visit)
	})
	if err != nil {
		return nil, err
	}

	sample, err := corpus.Sample(bench.rng(), records.Len(), bench.config.RandomReads)
	if err != nil {
		return nil, Error.New("%s %s: %v", l.Name(), PhaseRandom, err)
	}
	random, err := bench.measure(ctx, l, PhaseRandom, records, len(sample), func(visit layout.Visit) error {
		return l.Read(ctx, sample, visit)
	})
	if err != nil {
		return nil, err
	}

	return []Result{write, seq, random}, nil
}

// measure times one phase. With verification or progress enabled, each
// visited record is inspected outside of the timed window.
func (bench *Bench) measure(ctx context.Context, l layout.Layout, phase Phase, records corpus.Corpus, count int, run func(layout.Visit) error) (_ Result, err error) {
	defer mon.Task()(&ctx)(&err)

	check := bench.config.Verify && phase != PhaseWrite
	bar := bench.progress(l.Name(), phase, count)

	inspect := func(id int, data []byte) error {
		if check {
			if err := verifyRecord(records, id, data); err != nil {
				return err
			}
		}
		if bar != nil {
			bar.Increment()
		}
		return nil
	}

	result, err := timePhase(count, inspect, run)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return Result{}, Error.New("%s %s: %v", l.Name(), phase, err)
	}
	result.Strategy = l.Name()
	result.Phase = phase

	bench.log.Info("phase done",
		zap.String("strategy", result.Strategy),
		zap.String("phase", string(result.Phase)),
		zap.Duration("elapsed", result.Elapsed),
		zap.Int("records", result.Records),
		zap.Stringer("bytes", memory.Size(result.Bytes)))

	mon.FloatVal("phase_seconds").Observe(result.Seconds())
	mon.Meter("records_" + string(phase)).Mark(result.Records)
	return result, nil
}

// timePhase runs run and records per-record latency. Time spent in inspect
// is subtracted from both the record latencies and the elapsed time.
func timePhase(count int, inspect layout.Visit, run func(layout.Visit) error) (Result, error) {
	result := Result{
		Latencies: make([]time.Duration, 0, count),
	}

	var last, paused time.Duration
	visit := func(id int, data []byte) error {
		now := hrtime.Now()
		result.Latencies = append(result.Latencies, now-last)
		result.Records++
		result.Bytes += int64(len(data))

		err := inspect(id, data)

		last = hrtime.Now()
		paused += last - now
		return err
	}

	start := hrtime.Now()
	last = start
	err := run(visit)
	result.Elapsed = hrtime.Since(start) - paused
	return result, err
}

// startCPUProfile starts profiling into path. stop ends profiling and
// closes the file.
func startCPUProfile(path string) (stop func() error, err error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, Error.Wrap(err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		return nil, errs.Combine(Error.Wrap(err), f.Close())
	}
	return func() error {
		pprof.StopCPUProfile()
		return Error.Wrap(f.Close())
	}, nil
}

func verifyRecord(records corpus.Corpus, id int, data []byte) error {
	if id < 0 || id >= records.Len() {
		return Error.New("record %d outside corpus of %d records", id, records.Len())
	}
	if len(data) != len(records[id]) {
		return Error.New("record %d: read %d bytes, expected %d", id, len(data), len(records[id]))
	}
	if !bytes.Equal(data, records[id]) {
		return Error.New("record %d: content differs", id)
	}
	return nil
}
