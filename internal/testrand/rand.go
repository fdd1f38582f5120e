// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

// Package testrand generates random fixtures for tests.
package testrand

import (
	"math/rand"

	"storj.io/layoutbench/internal/memory"
	"storj.io/layoutbench/pkg/corpus"
)

// Read reads pseudo-random data into data.
func Read(data []byte) {
	const newSourceThreshold = 64
	if len(data) < newSourceThreshold {
		_, _ = rand.Read(data)
		return
	}

	src := rand.NewSource(rand.Int63())
	r := rand.New(src)
	_, _ = r.Read(data)
}

// Bytes generates size amount of random data.
func Bytes(size memory.Size) []byte {
	data := make([]byte, size.Int())
	Read(data)
	return data
}

// BytesN generates size amount of random data.
func BytesN(size int) []byte {
	return Bytes(memory.Size(size))
}

// Records generates one random record per entry in lengths.
func Records(lengths ...int) corpus.Corpus {
	records := make(corpus.Corpus, len(lengths))
	for i, length := range lengths {
		records[i] = corpus.Record(BytesN(length))
	}
	return records
}
