// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package corpus generates the records a layout benchmark stores and the
// record ids its read phases visit.
package corpus

import (
	crand "crypto/rand"
	"math/rand"

	"github.com/zeebo/errs"
)

// Error is the default error class for corpus generation.
var Error = errs.Class("corpus")

// Record is one variable-length binary blob, identified by its position
// in the corpus.
type Record []byte

// Corpus is the ordered set of records generated for one run.
type Corpus []Record

// Len returns the number of records.
func (corpus Corpus) Len() int { return len(corpus) }

// TotalSize returns the sum of all record lengths.
func (corpus Corpus) TotalSize() int64 {
	var total int64
	for _, record := range corpus {
		total += int64(len(record))
	}
	return total
}

// Lengths draws count lengths uniformly from [minSize, maxSize], in order.
func Lengths(rng *rand.Rand, count, minSize, maxSize int) ([]int, error) {
	if err := checkParams(count, minSize, maxSize); err != nil {
		return nil, err
	}

	lengths := make([]int, count)
	for i := range lengths {
		lengths[i] = minSize + rng.Intn(maxSize-minSize+1)
	}
	return lengths, nil
}

// Generate creates count records. Lengths come from rng and are
// reproducible for a fixed seed; contents are independently random.
func Generate(rng *rand.Rand, count, minSize, maxSize int) (Corpus, error) {
	lengths, err := Lengths(rng, count, minSize, maxSize)
	if err != nil {
		return nil, err
	}

	corpus := make(Corpus, count)
	for i, length := range lengths {
		record := make(Record, length)
		if _, err := crand.Read(record); err != nil {
			return nil, Error.Wrap(err)
		}
		corpus[i] = record
	}
	return corpus, nil
}

func checkParams(count, minSize, maxSize int) error {
	var group errs.Group
	if count < 0 {
		group.Add(Error.New("negative record count %d", count))
	}
	if minSize < 0 {
		group.Add(Error.New("negative minimum size %d", minSize))
	}
	if minSize > maxSize {
		group.Add(Error.New("minimum size %d larger than maximum size %d", minSize, maxSize))
	}
	return group.Err()
}
