// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package main

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/layoutbench/internal/testcontext"
)

func TestShouldWrite(t *testing.T) {
	ctx := testcontext.New(t)
	defer ctx.Cleanup()

	defer func(original func(string, ...interface{}) bool) { confirm = original }(confirm)

	asked := 0
	answer := false
	confirm = func(string, ...interface{}) bool {
		asked++
		return answer
	}

	path := ctx.File("layoutbench.yaml")
	assert.True(t, shouldWrite(path, false))
	assert.Equal(t, 0, asked)

	require.NoError(t, ioutil.WriteFile(path, []byte("records: 10\n"), 0600))

	assert.True(t, shouldWrite(path, true))
	assert.Equal(t, 0, asked)

	assert.False(t, shouldWrite(path, false))
	assert.Equal(t, 1, asked)

	answer = true
	assert.True(t, shouldWrite(path, false))
	assert.Equal(t, 2, asked)
}
