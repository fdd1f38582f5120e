// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package bench

import (
	"fmt"

	"github.com/cheggaaa/pb"
)

// progress returns a started progress bar for a phase, or nil when
// progress reporting is off.
func (bench *Bench) progress(strategy string, phase Phase, count int) *pb.ProgressBar {
	if !bench.config.Progress || bench.ProgressOutput == nil || count == 0 {
		return nil
	}

	bar := pb.New(count)
	bar.Output = bench.ProgressOutput
	bar.ShowSpeed = true
	bar.Prefix(fmt.Sprintf("%-10s %-5s ", strategy, phase))
	return bar.Start()
}
