// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package layout implements the on-disk arrangements compared by the
// benchmark: one monolithic file, fixed-count chunk files, and one file
// per record.
//
// Disk layout under the storage root:
//
//	root/
//	├── single/
//	│   └── data.bin
//	├── chunked/
//	│   ├── chunk_0.bin
//	│   └── chunk_{{ N }}.bin
//	└── individual/
//	    ├── rec_000000.bin
//	    └── rec_{{ ID }}.bin
//
// Where N is the 0-based chunk index and ID is the record index, zero
// padded to six digits.
package layout

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/zeebo/errs"
	monkit "gopkg.in/spacemonkeygo/monkit.v2"

	"storj.io/layoutbench/pkg/corpus"
)

var (
	mon = monkit.Package()

	// Error is the default error class for layouts.
	Error = errs.Class("layout")
)

// Layout names.
const (
	SingleName     = "single"
	ChunkedName    = "chunked"
	IndividualName = "individual"
)

// Names lists every layout in benchmark order.
var Names = []string{SingleName, ChunkedName, IndividualName}

// Visit is called once for every record a phase writes or reads, in the
// order the phase handles them. data is only valid during the call.
type Visit func(id int, data []byte) error

// Layout is an on-disk arrangement of a corpus.
type Layout interface {
	// Name returns the layout name.
	Name() string
	// Dir returns the directory the layout owns.
	Dir() string
	// Write wipes the layout directory and stores records in it.
	Write(ctx context.Context, records corpus.Corpus, visit Visit) error
	// Read reads the records with the given ids, in order.
	Read(ctx context.Context, ids []int, visit Visit) error
}

// Options configures layouts created with New.
type Options struct {
	// ChunkSize is the number of records per chunk file.
	ChunkSize int
	// WriteBufferSize is the buffer size for appending to shared files.
	WriteBufferSize int
}

// New creates the layout called name below root.
func New(name, root string, options Options) (Layout, error) {
	switch name {
	case SingleName:
		return NewSingle(filepath.Join(root, SingleName), options.WriteBufferSize), nil
	case ChunkedName:
		return NewChunked(filepath.Join(root, ChunkedName), options.ChunkSize, options.WriteBufferSize)
	case IndividualName:
		return NewIndividual(filepath.Join(root, IndividualName)), nil
	}
	return nil, Error.New("unknown layout %q", name)
}

// Span is the location of a record inside a file.
type Span struct {
	Offset int64
	Length int64
}

// ResetDir removes dir with everything inside it and creates it again empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(os.MkdirAll(dir, 0755))
}

// readSpan reads exactly span.Length bytes at span.Offset into buf.
func readSpan(file io.ReadSeeker, span Span, buf []byte) ([]byte, error) {
	if _, err := file.Seek(span.Offset, io.SeekStart); err != nil {
		return nil, err
	}
	data := buf[:span.Length]
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, err
	}
	return data, nil
}

func noVisit(int, []byte) error { return nil }

func orNoVisit(visit Visit) Visit {
	if visit == nil {
		return noVisit
	}
	return visit
}
