// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnumerateStatesApproximateMajority(t *testing.T) {
	require := require.New(t)
	states, index, err := EnumerateStates([]string{"A", "B"}, amRule(), 0)
	require.NoError(err)
	require.Len(states, 3)
	require.Contains(index, "A")
	require.Contains(index, "B")
	require.Contains(index, "U")
}

func TestEnumerateStatesTrivialRuleOnlyFindsInitial(t *testing.T) {
	require := require.New(t)
	identity := FromDeterministic(func(x, y string) (string, string) { return x, y })
	states, _, err := EnumerateStates([]string{"A", "B"}, identity, 0)
	require.NoError(err)
	require.Len(states, 2)
}

func TestEnumerateStatesUnboundedGrowthHitsMaxStates(t *testing.T) {
	require := require.New(t)
	// Every interaction between integer states i,j produces i+j+1, an
	// unbounded, ever-growing state space.
	grow := func(x, y int) (int, int) {
		return x, x + y + 1
	}
	rule := FromDeterministic(grow)

	_, _, err := EnumerateStates([]int{0, 1}, rule, 8)
	require.ErrorIs(err, ErrUnreachable)
}

func TestEnumerateStatesRespectsMaxStatesExactFit(t *testing.T) {
	require := require.New(t)
	states, _, err := EnumerateStates([]string{"A", "B"}, amRule(), 3)
	require.NoError(err)
	require.Len(states, 3)
}
