// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulation

import (
	"fmt"
	"strconv"
	"strings"
)

// Snapshot is one recorded (t, c) pair (spec.md §3 "History").
type Snapshot struct {
	T      float64
	Counts []uint64
}

// History is the append-only sequence of snapshots a Simulation records.
// Once appended, a Snapshot is never modified (spec.md §4.6 guarantees).
type History struct {
	cadence  float64
	lastT    float64
	haveAny  bool
	snapshots []Snapshot
}

func newHistory(cadence float64) *History {
	return &History{cadence: cadence}
}

// dueAt reports whether a snapshot should be recorded at time t, given
// the configured cadence (spec.md §6 "History... cadence").
func (h *History) dueAt(t float64) bool {
	if !h.haveAny {
		return true
	}
	return t-h.lastT >= h.cadence
}

func (h *History) append(t float64, counts []uint64) {
	snap := Snapshot{T: t, Counts: append([]uint64(nil), counts...)}
	h.snapshots = append(h.snapshots, snap)
	h.lastT = t
	h.haveAny = true
}

// Snapshots returns the recorded history in order.
func (h *History) Snapshots() []Snapshot {
	return h.snapshots
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Columns returns the columnar view of the history (spec.md §9
// "Dataframe history... replace with a columnar append-only buffer"): a
// time column plus one column per state index, in the order the caller's
// state_list assigns indices.
func (h *History) Columns(numStates int) (time []float64, columns [][]uint64) {
	time = make([]float64, len(h.snapshots))
	columns = make([][]uint64, numStates)
	for i := range columns {
		columns[i] = make([]uint64, len(h.snapshots))
	}
	for row, snap := range h.snapshots {
		time[row] = snap.T
		for i := 0; i < numStates && i < len(snap.Counts); i++ {
			columns[i][row] = snap.Counts[i]
		}
	}
	return time, columns
}

// WriteCSV renders the history as CSV text, header "t,state_0,state_1,...".
func (h *History) WriteCSV(numStates int, labels []string) string {
	var sb strings.Builder
	sb.WriteString("t")
	for i := 0; i < numStates; i++ {
		if i < len(labels) {
			sb.WriteString("," + labels[i])
		} else {
			sb.WriteString(",state_" + strconv.Itoa(i))
		}
	}
	sb.WriteString("\n")
	for _, snap := range h.snapshots {
		sb.WriteString(fmt.Sprintf("%g", snap.T))
		for i := 0; i < numStates; i++ {
			var v uint64
			if i < len(snap.Counts) {
				v = snap.Counts[i]
			}
			sb.WriteString("," + strconv.FormatUint(v, 10))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
