// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistoryDueAtCadence(t *testing.T) {
	require := require.New(t)
	h := newHistory(1.0)

	require.True(h.dueAt(0))
	h.append(0, []uint64{1, 2})
	require.False(h.dueAt(0.5))
	require.True(h.dueAt(1.0))
}

func TestHistoryColumnsShape(t *testing.T) {
	require := require.New(t)
	h := newHistory(0)
	h.append(0, []uint64{1, 2})
	h.append(1, []uint64{0, 3})

	time, columns := h.Columns(2)
	require.Equal([]float64{0, 1}, time)
	require.Equal([]uint64{1, 0}, columns[0])
	require.Equal([]uint64{2, 3}, columns[1])
}

func TestHistoryWriteCSV(t *testing.T) {
	require := require.New(t)
	h := newHistory(0)
	h.append(0, []uint64{5, 10})
	h.append(1, []uint64{4, 11})

	csv := h.WriteCSV(2, []string{"A", "B"})
	require.Equal("t,A,B\n0,5,10\n1,4,11\n", csv)
}

func TestHistorySnapshotsAreIndependentCopies(t *testing.T) {
	require := require.New(t)
	h := newHistory(0)
	counts := []uint64{1, 2}
	h.append(0, counts)
	counts[0] = 99

	require.Equal(uint64(1), h.Snapshots()[0].Counts[0])
}
