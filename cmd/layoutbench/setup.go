// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"os"

	prompt "github.com/segmentio/go-prompt"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"storj.io/layoutbench/pkg/bench"
	"storj.io/layoutbench/pkg/process"
)

var (
	setupCmd = &cobra.Command{
		Use:         "setup",
		Short:       "Write the effective run configuration to the config file",
		Args:        cobra.NoArgs,
		RunE:        cmdSetup,
		Annotations: map[string]string{"type": "setup"},
	}

	setupCfg       = bench.DefaultConfig()
	setupOverwrite bool

	confirm = prompt.Confirm
)

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCfg.BindFlags(setupCmd.Flags())
	setupCmd.Flags().BoolVar(&setupOverwrite, "overwrite", false, "replace an existing config file without asking")
}

func cmdSetup(cmd *cobra.Command, args []string) (err error) {
	if err := setupCfg.VerifyFlags(); err != nil {
		return err
	}

	path := cmd.Flag(process.ConfigFlag).Value.String()
	if path == "" {
		return process.Error.New("flag '--%s' is not set", process.ConfigFlag)
	}
	if !shouldWrite(path, setupOverwrite) {
		zap.L().Info("configuration left unchanged", zap.String("path", path))
		return nil
	}

	// only run flags belong in the file; BindFlags takes the effective
	// values as defaults.
	effective := setupCfg
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	effective.BindFlags(flags)

	if err := process.SaveConfig(flags, path, nil); err != nil {
		return err
	}
	zap.L().Info("configuration written", zap.String("path", path))
	return nil
}

// shouldWrite reports whether the config file at path may be written. An
// existing file is replaced only with overwrite set or after confirmation.
func shouldWrite(path string, overwrite bool) bool {
	if _, err := os.Stat(path); err != nil || overwrite {
		return true
	}
	return confirm("%q already exists. Replace it? y/n\n", path)
}
