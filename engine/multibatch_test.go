// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/popsim/rng"
	"github.com/luxfi/popsim/urn"
)

func TestBatchSizeClampsToHalfPopulation(t *testing.T) {
	require := require.New(t)
	table, _ := buildAMTable(t)
	m := NewMultiBatchEngine(table, 10, 1, nil)

	require.Equal(uint64(0), m.BatchSize(1))
	require.Equal(uint64(5), m.BatchSize(10))
}

func TestBatchSizeAtLeastOneForSmallPopulations(t *testing.T) {
	require := require.New(t)
	table, _ := buildAMTable(t)
	m := NewMultiBatchEngine(table, 0.001, 1, nil)

	require.Equal(uint64(1), m.BatchSize(4))
}

func TestMultiBatchStepConservesPopulation(t *testing.T) {
	require := require.New(t)
	table, _ := buildAMTable(t)
	u := urn.New([]uint64{500, 500, 0})
	m := NewMultiBatchEngine(table, 1.0, 1.0, nil)
	s := rng.NewSource(2)

	for i := 0; i < 50; i++ {
		before := u.Total()
		dt, nullFrac, silent := m.Step(s, u)
		if silent {
			break
		}
		require.Equal(before, u.Total())
		require.Greater(dt, 0.0)
		require.GreaterOrEqual(nullFrac, 0.0)
		require.LessOrEqual(nullFrac, 1.0)
	}
}

func TestExpectedCollisionsZeroPopulation(t *testing.T) {
	require := require.New(t)
	s := rng.NewSource(1)
	require.Equal(uint64(0), expectedCollisions(s, 10, 0))
}

func TestExpectedCollisionsZeroBatchSize(t *testing.T) {
	require := require.New(t)
	s := rng.NewSource(1)
	require.Equal(uint64(0), expectedCollisions(s, 0, 100))
}

func TestExpectedCollisionsMeanMatchesBirthdayEstimate(t *testing.T) {
	require := require.New(t)
	s := rng.NewSource(7)

	const b, n = 50, 10_000
	const trials = 20_000
	var sum uint64
	for i := 0; i < trials; i++ {
		sum += expectedCollisions(s, b, n)
	}
	mean := float64(sum) / float64(trials)

	want := float64(b) * float64(b) / float64(n)
	require.InDelta(want, mean, want*0.25+0.5)
}

func TestMultiBatchStepSilentOnTrivialPopulation(t *testing.T) {
	require := require.New(t)
	table, _ := buildAMTable(t)
	u := urn.New([]uint64{1, 0, 0})
	m := NewMultiBatchEngine(table, 1.0, 1.0, nil)
	s := rng.NewSource(1)

	_, _, silent := m.Step(s, u)
	require.True(silent)
}
