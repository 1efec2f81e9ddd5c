// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/transition"
)

func approximateMajorityTable(t *testing.T) (*transition.Table, map[string]int) {
	t.Helper()
	states := []string{"A", "B", "U"}
	index := map[string]int{"A": 0, "B": 1, "U": 2}
	rule := transition.FromDeterministic(func(x, y string) (string, string) {
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
	table, err := transition.Build(states, index, rule, transition.Asymmetric)
	require.NoError(t, err)
	return table, index
}

func TestDriverRunsUntilSilent(t *testing.T) {
	require := require.New(t)
	table, index := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 1

	d, err := New(table, []uint64{30, 10, 0}, opts, nil, nil)
	require.NoError(err)

	require.NoError(d.Run(context.Background(), Stop{}))
	require.True(d.Silent())

	counts := d.Counts()
	require.Equal(uint64(0), counts[index["U"]])
	require.True(counts[index["A"]] == 0 || counts[index["B"]] == 0)
}

func TestDriverStopsAtTimeHorizon(t *testing.T) {
	require := require.New(t)
	table, _ := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 2

	d, err := New(table, []uint64{5_000, 5_000, 0}, opts, nil, nil)
	require.NoError(err)

	require.NoError(d.Run(context.Background(), Stop{HasTime: true, Time: 0.01}))
	require.GreaterOrEqual(d.Time(), 0.01)
}

func TestDriverStopsAtPredicate(t *testing.T) {
	require := require.New(t)
	table, index := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 3
	opts.HistoryCadence = 0

	d, err := New(table, []uint64{200, 200, 0}, opts, nil, nil)
	require.NoError(err)

	uIndex := index["U"]
	predicate := func(counts []uint64) bool {
		return counts[uIndex] > 50
	}
	require.NoError(d.Run(context.Background(), Stop{Predicate: predicate}))
	require.Greater(d.Counts()[uIndex], uint64(50))
}

func TestDriverRespectsCancellation(t *testing.T) {
	require := require.New(t)
	table, _ := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 4

	d, err := New(table, []uint64{1_000_000, 1_000_000, 0}, opts, nil, nil)
	require.NoError(err)

	cancel := make(chan struct{})
	close(cancel)
	err = d.Run(context.Background(), Stop{Cancel: cancel})
	require.ErrorIs(err, ErrCancelled)
}

func TestDriverTimeoutViaContext(t *testing.T) {
	require := require.New(t)
	table, _ := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 5

	d, err := New(table, []uint64{1_000_000, 1_000_000, 0}, opts, nil, nil)
	require.NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	err = d.Run(ctx, Stop{})
	require.ErrorIs(err, ErrTimeout)
}

func TestDriverResetClearsHistoryAndClock(t *testing.T) {
	require := require.New(t)
	table, _ := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 6

	d, err := New(table, []uint64{30, 10, 0}, opts, nil, nil)
	require.NoError(err)
	require.NoError(d.Run(context.Background(), Stop{}))
	require.Greater(d.Time(), 0.0)

	d.Reset([]uint64{20, 20, 0})
	require.Equal(0.0, d.Time())
	require.Equal(1, d.History().Len())
	require.Equal([]uint64{20, 20, 0}, d.Counts())
}

func TestDriverEnabledReactionsEmptyWhenSilent(t *testing.T) {
	require := require.New(t)
	table, _ := approximateMajorityTable(t)
	opts := config.DefaultOptions
	opts.Seed = 7

	d, err := New(table, []uint64{10, 0, 0}, opts, nil, nil)
	require.NoError(err)
	require.Empty(d.EnabledReactions())
	require.True(d.Silent())
}
