// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout

import (
	"bufio"
	"context"
	"os"
	"path/filepath"

	"github.com/zeebo/errs"

	"storj.io/layoutbench/pkg/corpus"
)

var _ Layout = (*Single)(nil)

// Single stores every record contiguously in one data file.
type Single struct {
	dir        string
	bufferSize int

	index     []Span
	maxLength int64
}

// NewSingle creates a single-file layout in dir. bufferSize <= 0 uses the
// bufio default.
func NewSingle(dir string, bufferSize int) *Single {
	return &Single{dir: dir, bufferSize: bufferSize}
}

// Name returns the layout name.
func (single *Single) Name() string { return SingleName }

// Dir returns the directory the layout owns.
func (single *Single) Dir() string { return single.dir }

// Path returns the path of the data file.
func (single *Single) Path() string { return filepath.Join(single.dir, "data.bin") }

// Index returns the location of every record written by the last Write.
func (single *Single) Index() []Span { return single.index }

// Write stores records one after another in the data file.
func (single *Single) Write(ctx context.Context, records corpus.Corpus, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	single.index, single.maxLength = nil, 0
	if err := ResetDir(single.dir); err != nil {
		return err
	}

	file, err := os.Create(single.Path())
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(file.Close())) }()

	writer := newWriter(file, single.bufferSize)

	index := make([]Span, 0, len(records))
	var offset, maxLength int64
	for id, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := writer.Write(record); err != nil {
			return Error.Wrap(err)
		}

		length := int64(len(record))
		index = append(index, Span{Offset: offset, Length: length})
		offset += length
		if length > maxLength {
			maxLength = length
		}

		if err := visit(id, record); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return Error.Wrap(err)
	}

	single.index, single.maxLength = index, maxLength
	mon.IntVal("single_file_size").Observe(offset)
	return nil
}

// Read opens the data file once and reads every requested record at its
// recorded offset.
func (single *Single) Read(ctx context.Context, ids []int, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	file, err := os.Open(single.Path())
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(file.Close())) }()

	buf := make([]byte, single.maxLength)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if id < 0 || id >= len(single.index) {
			return Error.New("record %d outside index of %d records", id, len(single.index))
		}

		span := single.index[id]
		data, err := readSpan(file, span, buf)
		if err != nil {
			return Error.New("record %d at %s+%d: %v", id, file.Name(), span.Offset, err)
		}

		if err := visit(id, data); err != nil {
			return err
		}
	}
	return nil
}

func newWriter(file *os.File, size int) *bufio.Writer {
	if size <= 0 {
		return bufio.NewWriter(file)
	}
	return bufio.NewWriterSize(file, size)
}
