// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/errs"

	"storj.io/layoutbench/pkg/corpus"
)

var _ Layout = (*Chunked)(nil)

// ChunkSpan is the location of a record inside a chunk file.
type ChunkSpan struct {
	Chunk int
	Span
}

// Chunked groups consecutive records into chunk files of a fixed record
// count. The last chunk may hold fewer records.
type Chunked struct {
	dir        string
	chunkSize  int
	bufferSize int

	index     []ChunkSpan
	chunks    int
	maxLength int64
}

// NewChunked creates a chunked layout in dir with chunkSize records per file.
func NewChunked(dir string, chunkSize, bufferSize int) (*Chunked, error) {
	if chunkSize <= 0 {
		return nil, Error.New("chunk size must be positive, got %d", chunkSize)
	}
	return &Chunked{dir: dir, chunkSize: chunkSize, bufferSize: bufferSize}, nil
}

// ChunkName returns the file name of the chunk with the given index.
func ChunkName(chunk int) string {
	return fmt.Sprintf("chunk_%d.bin", chunk)
}

// Name returns the layout name.
func (chunked *Chunked) Name() string { return ChunkedName }

// Dir returns the directory the layout owns.
func (chunked *Chunked) Dir() string { return chunked.dir }

// ChunkPath returns the path of the chunk with the given index.
func (chunked *Chunked) ChunkPath(chunk int) string {
	return filepath.Join(chunked.dir, ChunkName(chunk))
}

// Index returns the location of every record written by the last Write.
func (chunked *Chunked) Index() []ChunkSpan { return chunked.index }

// Chunks returns the number of chunk files written by the last Write.
func (chunked *Chunked) Chunks() int { return chunked.chunks }

// Write partitions records into chunks and stores each chunk contiguously
// in its own file.
func (chunked *Chunked) Write(ctx context.Context, records corpus.Corpus, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	chunked.index, chunked.chunks, chunked.maxLength = nil, 0, 0
	if err := ResetDir(chunked.dir); err != nil {
		return err
	}

	index := make([]ChunkSpan, 0, len(records))
	chunks := 0
	for start := 0; start < len(records); start += chunked.chunkSize {
		end := start + chunked.chunkSize
		if end > len(records) {
			end = len(records)
		}

		index, err = chunked.writeChunk(ctx, chunks, start, records[start:end], index, visit)
		if err != nil {
			return err
		}
		chunks++
	}

	var maxLength int64
	for _, span := range index {
		if span.Length > maxLength {
			maxLength = span.Length
		}
	}

	chunked.index, chunked.chunks, chunked.maxLength = index, chunks, maxLength
	mon.IntVal("chunk_count").Observe(int64(chunks))
	return nil
}

// writeChunk writes records, the first of which has id start, into chunk
// and appends their locations to index.
func (chunked *Chunked) writeChunk(ctx context.Context, chunk, start int, records corpus.Corpus, index []ChunkSpan, visit Visit) (_ []ChunkSpan, err error) {
	file, err := os.Create(chunked.ChunkPath(chunk))
	if err != nil {
		return index, Error.Wrap(err)
	}
	defer func() { err = errs.Combine(err, Error.Wrap(file.Close())) }()

	writer := newWriter(file, chunked.bufferSize)

	var offset int64
	for i, record := range records {
		if err := ctx.Err(); err != nil {
			return index, err
		}
		if _, err := writer.Write(record); err != nil {
			return index, Error.Wrap(err)
		}

		length := int64(len(record))
		index = append(index, ChunkSpan{
			Chunk: chunk,
			Span:  Span{Offset: offset, Length: length},
		})
		offset += length

		if err := visit(start+i, record); err != nil {
			return index, err
		}
	}

	return index, Error.Wrap(writer.Flush())
}

// Read reads every requested record from its chunk file. Chunk files are
// opened on first use and all of them are closed before Read returns.
func (chunked *Chunked) Read(ctx context.Context, ids []int, visit Visit) (err error) {
	defer mon.Task()(&ctx)(&err)
	visit = orNoVisit(visit)

	files := newHandles(chunked.ChunkPath)
	defer func() { err = errs.Combine(err, files.Close()) }()

	buf := make([]byte, chunked.maxLength)
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if id < 0 || id >= len(chunked.index) {
			return Error.New("record %d outside index of %d records", id, len(chunked.index))
		}

		span := chunked.index[id]
		file, err := files.Get(span.Chunk)
		if err != nil {
			return err
		}

		data, err := readSpan(file, span.Span, buf)
		if err != nil {
			return Error.New("record %d at %s+%d: %v", id, file.Name(), span.Offset, err)
		}

		if err := visit(id, data); err != nil {
			return err
		}
	}

	mon.IntVal("open_chunks").Observe(int64(files.Len()))
	return nil
}
