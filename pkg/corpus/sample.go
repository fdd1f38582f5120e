// Copyright (C) 2019 Storj Labs, Inc.
// See LICENSE for copying information.

package corpus

import "math/rand"

// Sequential returns the ids 0..n-1 in order.
func Sequential(n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Sample draws k distinct ids from [0, n) without replacement. The ids are
// returned in draw order and are reproducible for a fixed rng seed.
func Sample(rng *rand.Rand, n, k int) ([]int, error) {
	switch {
	case n < 0:
		return nil, Error.New("negative population %d", n)
	case k < 0:
		return nil, Error.New("negative sample size %d", k)
	case k > n:
		return nil, Error.New("sample size %d larger than population %d", k, n)
	}

	// partial Fisher-Yates over the population
	pool := Sequential(n)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k], nil
}
