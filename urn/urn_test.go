// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package urn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/popsim/rng"
)

func TestNewAndTotal(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{3, 5, 0, 2})
	require.Equal(uint64(10), u.Total())
	require.Equal(4, u.NumStates())
	require.Equal([]uint64{3, 5, 0, 2}, u.Counts())
}

func TestAddRemove(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{1, 1})
	u.Add(0, 4)
	require.Equal(uint64(5), u.Count(0))
	require.Equal(uint64(6), u.Total())

	u.Remove(0, 2)
	require.Equal(uint64(3), u.Count(0))
	require.Equal(uint64(4), u.Total())
}

func TestRemoveBelowZeroPanics(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{1})
	require.Panics(func() { u.Remove(0, 2) })
}

func TestSampleRespectsZeroWeightStates(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{0, 10, 0})
	s := rng.NewSource(1)
	for i := 0; i < 500; i++ {
		require.Equal(1, u.Sample(s))
	}
}

func TestSampleEmptyUrnReturnsSentinel(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{0, 0})
	s := rng.NewSource(1)
	require.Equal(-1, u.Sample(s))
}

func TestSampleWithoutReplacementConservesCounts(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{10, 20, 5, 0, 15})
	s := rng.NewSource(7)

	for trial := 0; trial < 50; trial++ {
		d := u.SampleWithoutReplacement(s, 17)
		var sum uint64
		for i, di := range d {
			require.LessOrEqual(di, u.Count(i))
			sum += di
		}
		require.Equal(uint64(17), sum)
	}
}

func TestSampleWithoutReplacementFullDrawReturnsEverything(t *testing.T) {
	require := require.New(t)
	counts := []uint64{4, 0, 6}
	u := New(counts)
	s := rng.NewSource(9)

	d := u.SampleWithoutReplacement(s, u.Total())
	require.Equal(counts, d)
}

func TestSampleWithoutReplacementOverdrawPanics(t *testing.T) {
	require := require.New(t)
	u := New([]uint64{2, 2})
	s := rng.NewSource(1)
	require.Panics(func() { u.SampleWithoutReplacement(s, 5) })
}

func TestNextPow2(t *testing.T) {
	require := require.New(t)
	require.Equal(1, nextPow2(0))
	require.Equal(1, nextPow2(1))
	require.Equal(2, nextPow2(2))
	require.Equal(4, nextPow2(3))
	require.Equal(8, nextPow2(5))
	require.Equal(8, nextPow2(8))
	require.Equal(16, nextPow2(9))
}
