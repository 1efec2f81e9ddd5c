// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func amStates() ([]string, map[string]int) {
	states := []string{"A", "B", "U"}
	index := map[string]int{"A": 0, "B": 1, "U": 2}
	return states, index
}

func amRule() RuleFunc[string] {
	return FromDeterministic(func(x, y string) (string, string) {
		switch {
		case x == "A" && y == "B":
			return "U", "U"
		case x == "A" && y == "U":
			return "A", "A"
		case x == "B" && y == "U":
			return "B", "B"
		default:
			return x, y
		}
	})
}

func TestBuildAsymmetricAndIsNull(t *testing.T) {
	require := require.New(t)
	states, index := amStates()
	table, err := Build(states, index, amRule(), Asymmetric)
	require.NoError(err)
	require.Equal(3, table.NumStates())

	e := table.Get(index["A"], index["B"])
	require.False(e.IsNull)
	require.Equal([]IndexPair{{I: index["U"], J: index["U"]}}, e.Outputs)

	e = table.Get(index["A"], index["A"])
	require.True(e.IsNull)

	// Asymmetric order never mirrors: B+A is not a rule case, so it is
	// null even though A+B is not.
	e = table.Get(index["B"], index["A"])
	require.True(e.IsNull)
}

func TestBuildSymmetricMirrors(t *testing.T) {
	require := require.New(t)
	states, index := amStates()
	table, err := Build(states, index, amRule(), Symmetric)
	require.NoError(err)

	fwd := table.Get(index["A"], index["B"])
	rev := table.Get(index["B"], index["A"])
	require.Equal(fwd.Outputs, []IndexPair{{I: index["U"], J: index["U"]}})
	require.Equal(rev.Outputs, []IndexPair{{I: index["U"], J: index["U"]}})
}

func TestBuildRejectsUnreachableOutput(t *testing.T) {
	require := require.New(t)
	states := []string{"A", "B"}
	index := map[string]int{"A": 0, "B": 1}
	rule := FromDeterministic(func(x, y string) (string, string) {
		return "C", "C" // not in index
	})
	_, err := Build(states, index, rule, Asymmetric)
	require.ErrorIs(err, ErrInvalidRule)
}

func TestBuildRejectsBadProbabilitySum(t *testing.T) {
	require := require.New(t)
	states := []string{"A", "B"}
	index := map[string]int{"A": 0, "B": 1}
	rule := FromDistributionMap(map[Pair[string]][]Branch[string]{
		{X: "A", Y: "B"}: {
			{Out: Pair[string]{X: "A", Y: "A"}, Prob: 0.3},
			{Out: Pair[string]{X: "B", Y: "B"}, Prob: 0.3},
		},
	})
	_, err := Build(states, index, rule, Asymmetric)
	require.ErrorIs(err, ErrInvalidRule)
}

func TestPairDistributionMixesRolesForAsymmetricRule(t *testing.T) {
	require := require.New(t)
	states := []string{"A", "B"}
	index := map[string]int{"A": 0, "B": 1}
	// A rule that only does something when A plays the first role.
	rule := FromMap(map[Pair[string]]Pair[string]{
		{X: "A", Y: "B"}: {X: "B", Y: "A"},
	})
	table, err := Build(states, index, rule, Asymmetric)
	require.NoError(err)

	branches, isNull := table.PairDistribution(index["A"], index["B"])
	require.False(isNull)
	require.Len(branches, 2)
	var total float64
	for _, b := range branches {
		total += b.Prob
	}
	require.InDelta(1.0, total, 1e-12)
}

func TestPairDistributionSameStateCollapses(t *testing.T) {
	require := require.New(t)
	states, index := amStates()
	table, err := Build(states, index, amRule(), Asymmetric)
	require.NoError(err)

	branches, isNull := table.PairDistribution(index["A"], index["A"])
	require.True(isNull)
	require.Len(branches, 1)
}

func TestSampleOutcomeDeterministic(t *testing.T) {
	require := require.New(t)
	states, index := amStates()
	table, err := Build(states, index, amRule(), Asymmetric)
	require.NoError(err)

	out := table.SampleOutcome(0.0, index["A"], index["B"])
	require.Equal(IndexPair{I: index["U"], J: index["U"]}, out)
}

func TestReactionsDeduplicatesSymmetricPairs(t *testing.T) {
	require := require.New(t)
	states, index := amStates()
	table, err := Build(states, index, amRule(), Symmetric)
	require.NoError(err)

	reactions := table.Reactions()
	require.NotEmpty(reactions)
	var abCount int
	for _, r := range reactions {
		if r.I != r.J {
			require.True(r.Symmetric)
		}
		if (r.I == index["A"] && r.J == index["B"]) || (r.I == index["B"] && r.J == index["A"]) {
			abCount++
		}
	}
	require.Equal(1, abCount)
}
