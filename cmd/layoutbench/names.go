// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"storj.io/layoutbench/pkg/layout"
)

var namesCmd = &cobra.Command{
	Use:   "names <id|name>...",
	Short: "Print the individual layout file name of record ids, or the id of file names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printNames(os.Stdout, args)
	},
}

func init() {
	rootCmd.AddCommand(namesCmd)
}

// printNames writes "<arg> <mapped>" for every argument. Numbers map to
// names and names map back to numbers.
func printNames(w io.Writer, args []string) error {
	for _, arg := range args {
		mapped, err := mapName(arg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", arg, mapped); err != nil {
			return err
		}
	}
	return nil
}

func mapName(arg string) (string, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if id < 0 {
			return "", layout.Error.New("negative record id %d", id)
		}
		return layout.RecordName(id), nil
	}

	id, err := layout.ParseRecordName(arg)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(id), nil
}
