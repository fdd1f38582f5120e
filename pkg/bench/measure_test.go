// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package bench

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storj.io/layoutbench/pkg/layout"
)

func TestTimePhaseExcludesInspection(t *testing.T) {
	const pause = 20 * time.Millisecond

	inspected := 0
	inspect := func(id int, data []byte) error {
		inspected++
		time.Sleep(pause)
		return nil
	}

	result, err := timePhase(3, inspect, func(visit layout.Visit) error {
		for id := 0; id < 3; id++ {
			if err := visit(id, make([]byte, 10)); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 3, inspected)
	assert.Equal(t, 3, result.Records)
	assert.Equal(t, int64(30), result.Bytes)
	require.Len(t, result.Latencies, 3)
	for _, latency := range result.Latencies {
		assert.True(t, latency < pause, "latency %v includes inspection", latency)
	}
	assert.True(t, result.Elapsed >= 0)
	assert.True(t, result.Elapsed < pause, "elapsed %v includes inspection", result.Elapsed)
}

func TestTimePhaseInspectionError(t *testing.T) {
	failure := errors.New("content differs")

	result, err := timePhase(2, func(id int, data []byte) error {
		if id == 1 {
			return failure
		}
		return nil
	}, func(visit layout.Visit) error {
		for id := 0; id < 2; id++ {
			if err := visit(id, nil); err != nil {
				return err
			}
		}
		return nil
	})
	assert.Equal(t, failure, err)
	assert.Equal(t, 2, result.Records)
}
