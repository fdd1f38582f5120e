// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"github.com/spf13/cobra"

	"storj.io/layoutbench/pkg/process"
)

var rootCmd = &cobra.Command{
	Use:   "layoutbench",
	Short: "Compare on-disk layouts for many small records",
}

func main() {
	cobra.EnableCommandSorting = false
	process.Exec(rootCmd)
}
