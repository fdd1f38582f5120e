// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zeebo/errs"
	"go.uber.org/zap"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"storj.io/layoutbench/pkg/bench"
	"storj.io/layoutbench/pkg/process"
)

var (
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Write and read the corpus with every layout and print timings",
		Args:  cobra.NoArgs,
		RunE:  cmdRun,
	}

	runCfg     = bench.DefaultConfig()
	runMetrics string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCfg.BindFlags(runCmd.Flags())
	runCmd.Flags().StringVar(&runMetrics, "metrics", "", "write process and benchmark metrics to this file after the run")
}

func cmdRun(cmd *cobra.Command, args []string) (err error) {
	ctx, cancel := process.Ctx(cmd)
	defer cancel()

	if runMetrics != "" {
		process.InitMetrics(monkit.Default)
	}

	b, err := bench.New(zap.L().Named("bench"), runCfg)
	if err != nil {
		return err
	}

	report, err := b.Run(ctx)
	if err != nil {
		return err
	}
	if err := report.Print(os.Stdout); err != nil {
		return err
	}

	if runMetrics != "" {
		return writeMetrics(runMetrics)
	}
	return nil
}

func writeMetrics(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { err = errs.Combine(err, f.Close()) }()

	return process.WriteMetrics(f, monkit.Default)
}
