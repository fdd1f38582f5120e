// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout

import (
	"os"

	"github.com/zeebo/errs"
)

// handles keeps chunk files open for the duration of one read phase.
// Files are opened on first access and released together by Close.
type handles struct {
	path func(chunk int) string
	open map[int]*os.File
}

func newHandles(path func(chunk int) string) *handles {
	return &handles{
		path: path,
		open: map[int]*os.File{},
	}
}

// Get returns the open file for chunk, opening it when needed.
func (files *handles) Get(chunk int) (*os.File, error) {
	if file, ok := files.open[chunk]; ok {
		return file, nil
	}

	file, err := os.Open(files.path(chunk))
	if err != nil {
		return nil, Error.Wrap(err)
	}
	files.open[chunk] = file
	return file, nil
}

// Len returns the number of open files.
func (files *handles) Len() int { return len(files.open) }

// Close closes every open file. Close errors are combined.
func (files *handles) Close() error {
	var group errs.Group
	for chunk, file := range files.open {
		group.Add(file.Close())
		delete(files.open, chunk)
	}
	return Error.Wrap(group.Err())
}
