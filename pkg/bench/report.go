// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package bench

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"
)

// Phase identifies what a measurement timed.
type Phase string

// Phases in the order they run for every layout.
const (
	PhaseWrite      Phase = "write"
	PhaseSequential Phase = "seq"
	PhaseRandom     Phase = "rand"
)

// Phases lists every phase in run order.
var Phases = []Phase{PhaseWrite, PhaseSequential, PhaseRandom}

// Result is the measurement of one phase of one layout.
type Result struct {
	Strategy string
	Phase    Phase
	Elapsed  time.Duration

	Records int
	Bytes   int64

	// Latencies holds the time spent on every record, in visit order.
	Latencies []time.Duration
}

// Seconds returns the elapsed time in seconds.
func (result Result) Seconds() float64 { return result.Elapsed.Seconds() }

// Throughput returns MiB per second.
func (result Result) Throughput() float64 {
	if result.Elapsed <= 0 {
		return 0
	}
	const MB = 1 << 20
	return (float64(result.Bytes) / MB) / result.Elapsed.Seconds()
}

// Percentile returns the per-record latency below which fraction p of
// the records fall, p in [0, 1].
func (result Result) Percentile(p float64) time.Duration {
	if len(result.Latencies) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), result.Latencies...)
	sort.Slice(sorted, func(i, k int) bool { return sorted[i] < sorted[k] })

	switch {
	case p <= 0:
		return sorted[0]
	case p >= 1:
		return sorted[len(sorted)-1]
	}
	return sorted[int(p*float64(len(sorted)-1)+0.5)]
}

// Report holds all results of a run, in run order.
type Report struct {
	Records int
	Bytes   int64

	Results []Result
}

// Find returns the result of a phase of a layout.
func (report *Report) Find(strategy string, phase Phase) (Result, bool) {
	for _, result := range report.Results {
		if result.Strategy == strategy && result.Phase == phase {
			return result, true
		}
	}
	return Result{}, false
}

// Print writes one line per result: strategy, phase and elapsed seconds,
// followed by record count, bytes, throughput and latency percentiles.
func (report *Report) Print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "strategy\tphase\tseconds\trecords\tbytes\tMiB/s\tp50\tp99")
	for _, result := range report.Results {
		fmt.Fprintf(tw, "%s\t%s\t%.6f\t%d\t%d\t%.2f\t%v\t%v\n",
			result.Strategy, result.Phase, result.Seconds(),
			result.Records, result.Bytes, result.Throughput(),
			result.Percentile(0.5), result.Percentile(0.99))
	}
	return Error.Wrap(tw.Flush())
}
