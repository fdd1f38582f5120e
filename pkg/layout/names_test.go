// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/layoutbench/pkg/layout"
)

func TestRecordName(t *testing.T) {
	for id, name := range map[int]string{
		0:        "rec_000000.bin",
		7:        "rec_000007.bin",
		123456:   "rec_123456.bin",
		999999:   "rec_999999.bin",
		1000000:  "rec_1000000.bin",
		12345678: "rec_12345678.bin",
	} {
		assert.Equal(t, name, layout.RecordName(id))

		parsed, err := layout.ParseRecordName(name)
		require.NoError(t, err, name)
		assert.Equal(t, id, parsed, name)
	}
}

func TestRecordNameBijective(t *testing.T) {
	seen := map[string]bool{}
	for _, id := range []int{0, 1, 9, 10, 99999, 100000, 999999, 1000000, 1000001, 10000000} {
		name := layout.RecordName(id)
		require.False(t, seen[name], "name %q repeated", name)
		seen[name] = true

		parsed, err := layout.ParseRecordName(name)
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	}
}

func TestRecordNameSortsById(t *testing.T) {
	for id := 0; id < 999999; id += 7919 {
		assert.True(t, layout.RecordName(id) < layout.RecordName(id+1), "id %d", id)
	}
	assert.True(t, layout.RecordName(999998) < layout.RecordName(999999))

	// wider names no longer sort after narrower ones
	assert.True(t, layout.RecordName(1000000) < layout.RecordName(999999))
}

func TestParseRecordNameInvalid(t *testing.T) {
	for _, name := range []string{
		"",
		"rec_.bin",
		"rec_7.bin",
		"rec_00007.bin",
		"rec_0000007.bin",
		"rec_00000a.bin",
		"rec_-00001.bin",
		"rec_+00001.bin",
		"rec_000007.dat",
		"chunk_000007.bin",
		"rec_000007.bin.tmp",
		"rec_99999999999999999999999.bin",
	} {
		_, err := layout.ParseRecordName(name)
		require.Error(t, err, name)
		assert.True(t, layout.Error.Has(err), name)
	}
}

func TestChunkName(t *testing.T) {
	assert.Equal(t, "chunk_0.bin", layout.ChunkName(0))
	assert.Equal(t, "chunk_12.bin", layout.ChunkName(12))
}
