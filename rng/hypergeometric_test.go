// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHypergeometricBounds(t *testing.T) {
	require := require.New(t)
	s := NewSource(11)
	for i := 0; i < 2_000; i++ {
		got := Hypergeometric(s, 30, 70, 20)
		require.LessOrEqual(got, uint64(20))
		require.LessOrEqual(got, uint64(30))
	}
}

func TestHypergeometricDegenerateCases(t *testing.T) {
	require := require.New(t)
	s := NewSource(12)

	require.Equal(uint64(0), Hypergeometric(s, 0, 10, 5))
	require.Equal(uint64(5), Hypergeometric(s, 10, 0, 5))
	require.Equal(uint64(0), Hypergeometric(s, 10, 10, 0))
	require.Equal(uint64(10), Hypergeometric(s, 10, 10, 20))
}

func TestHypergeometricMeanIsApproximatelyRight(t *testing.T) {
	require := require.New(t)
	s := NewSource(13)

	const trials = 20_000
	var sum uint64
	for i := 0; i < trials; i++ {
		sum += Hypergeometric(s, 40, 60, 10)
	}
	mean := float64(sum) / trials
	// E[successes] = drawCount * left / total = 10 * 40/100 = 4.
	require.InDelta(4.0, mean, 0.2)
}

func TestHypergeometricApproximationPathBounds(t *testing.T) {
	require := require.New(t)
	s := NewSource(14)

	got := Hypergeometric(s, 1<<20, 1<<20, exactHypergeometricLimit+1)
	require.LessOrEqual(got, uint64(exactHypergeometricLimit+1))
	require.LessOrEqual(got, uint64(1<<20))
}
