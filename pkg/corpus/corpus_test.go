// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package corpus_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/layoutbench/pkg/corpus"
)

func lengthsOf(records corpus.Corpus) []int {
	lengths := make([]int, len(records))
	for i, record := range records {
		lengths[i] = len(record)
	}
	return lengths
}

func TestGenerateReproducibleLengths(t *testing.T) {
	for _, seed := range []int64{0, 1, 42, -7, 1 << 40} {
		a, err := corpus.Generate(rand.New(rand.NewSource(seed)), 200, 16, 32)
		require.NoError(t, err)
		b, err := corpus.Generate(rand.New(rand.NewSource(seed)), 200, 16, 32)
		require.NoError(t, err)

		assert.Equal(t, lengthsOf(a), lengthsOf(b), "seed %d", seed)

		lengths, err := corpus.Lengths(rand.New(rand.NewSource(seed)), 200, 16, 32)
		require.NoError(t, err)
		assert.Equal(t, lengths, lengthsOf(a), "seed %d", seed)
	}
}

func TestGenerateLengthsInRange(t *testing.T) {
	records, err := corpus.Generate(rand.New(rand.NewSource(42)), 1000, 1024, 2048)
	require.NoError(t, err)
	require.Equal(t, 1000, records.Len())

	var total int64
	for _, record := range records {
		require.True(t, len(record) >= 1024 && len(record) <= 2048, "length %d", len(record))
		total += int64(len(record))
	}
	assert.Equal(t, total, records.TotalSize())
}

func TestGenerateFixedSize(t *testing.T) {
	records, err := corpus.Generate(rand.New(rand.NewSource(1)), 10, 8, 8)
	require.NoError(t, err)
	for _, record := range records {
		assert.Len(t, record, 8)
	}
	assert.EqualValues(t, 80, records.TotalSize())
}

func TestGenerateEmpty(t *testing.T) {
	records, err := corpus.Generate(rand.New(rand.NewSource(1)), 0, 16, 32)
	require.NoError(t, err)
	assert.Equal(t, 0, records.Len())
	assert.EqualValues(t, 0, records.TotalSize())
}

func TestGenerateInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, params := range [][3]int{
		{-1, 16, 32},
		{10, -1, 32},
		{10, 33, 32},
	} {
		_, err := corpus.Generate(rng, params[0], params[1], params[2])
		require.Error(t, err, "%v", params)
		assert.True(t, corpus.Error.Has(err), "%v", params)
	}
}

func TestSequential(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2, 3}, corpus.Sequential(4))
	assert.Empty(t, corpus.Sequential(0))
}

func TestSample(t *testing.T) {
	for _, tc := range []struct{ n, k int }{
		{10, 5}, {10, 10}, {10, 0}, {1, 1}, {100000, 1000},
	} {
		ids, err := corpus.Sample(rand.New(rand.NewSource(42)), tc.n, tc.k)
		require.NoError(t, err)
		require.Len(t, ids, tc.k)

		seen := map[int]bool{}
		for _, id := range ids {
			require.True(t, id >= 0 && id < tc.n, "id %d outside [0,%d)", id, tc.n)
			require.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}

		again, err := corpus.Sample(rand.New(rand.NewSource(42)), tc.n, tc.k)
		require.NoError(t, err)
		assert.Equal(t, ids, again)
	}
}

func TestSampleFullIsPermutation(t *testing.T) {
	ids, err := corpus.Sample(rand.New(rand.NewSource(3)), 50, 50)
	require.NoError(t, err)
	assert.ElementsMatch(t, corpus.Sequential(50), ids)
}

func TestSampleInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, tc := range []struct{ n, k int }{
		{10, 11}, {-1, 0}, {10, -1},
	} {
		_, err := corpus.Sample(rng, tc.n, tc.k)
		require.Error(t, err)
		assert.True(t, corpus.Error.Has(err))
	}
}
