// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rng

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint64NWithinBound(t *testing.T) {
	require := require.New(t)
	s := NewSource(1)
	for i := 0; i < 10_000; i++ {
		v := Uint64N(s, 7)
		require.Less(v, uint64(7))
	}
}

func TestUint64NPanicsOnZero(t *testing.T) {
	require := require.New(t)
	s := NewSource(1)
	require.Panics(func() { Uint64N(s, 0) })
}

func TestIntNDeterministicGivenSeed(t *testing.T) {
	require := require.New(t)
	a := NewSource(42)
	b := NewSource(42)

	for i := 0; i < 100; i++ {
		require.Equal(IntN(a, 1000), IntN(b, 1000))
	}
}

func TestFloat64InUnitInterval(t *testing.T) {
	require := require.New(t)
	s := NewSource(7)
	for i := 0; i < 10_000; i++ {
		v := Float64(s)
		require.GreaterOrEqual(v, 0.0)
		require.Less(v, 1.0)
	}
}

func TestUint64NDistributesAcrossFullRange(t *testing.T) {
	require := require.New(t)
	s := NewSource(3)
	seen := make(map[uint64]bool)
	for i := 0; i < 5_000; i++ {
		seen[Uint64N(s, 5)] = true
	}
	require.Len(seen, 5)
}
