// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/zeebo/errs"

	"storj.io/layoutbench/pkg/corpus"
)

var _ Layout = (*Individual)(nil)

// Individual stores every record in its own file. The file name encodes
// the record id, so no index is kept.
type Individual struct {
	dir   string
	count int
}

// NewIndividual creates a file-per-record layout in dir.
func NewIndividual(dir string) *Individual {
	return &Individual{dir: dir}
}

// Name returns the layout name.
func (individual *Individual) Name() string { return IndividualName }

// Dir returns the directory the layout owns.
func (individual *Individual) Dir() string { return individual.dir }

// Path returns the path of the file holding record id.
func (individual *Individual) Path(id int) string {
	return filepath.Join(individual.dir, RecordName(id))
}

// Count returns the number of records written by the last Write.
func (individual *Individual) Count() int { return individual.count }

// Write creates one file per record.
func (individual *Individual) Write(ctx context.Context, records corpus.Corpus, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	individual.count = 0
	if err := ResetDir(individual.dir); err != nil {
		return err
	}

	for id, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ioutil.WriteFile(individual.Path(id), record, 0644); err != nil {
			return Error.Wrap(err)
		}
		if err := visit(id, record); err != nil {
			return err
		}
	}

	individual.count = len(records)
	return nil
}

// Read opens, reads fully and closes the file of every requested record.
func (individual *Individual) Read(ctx context.Context, ids []int, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	var buf bytes.Buffer
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if id < 0 {
			return Error.New("negative record id %d", id)
		}

		buf.Reset()
		if err := individual.readFile(id, &buf); err != nil {
			return err
		}

		if err := visit(id, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

func (individual *Individual) readFile(id int, buf *bytes.Buffer) (err error) {
	file, err := os.Open(individual.Path(id))
	if err != nil {
		return Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(file.Close())) }()

	_, err = buf.ReadFrom(file)
	return Error.Wrap(err)
}
