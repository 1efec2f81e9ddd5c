// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"math"

	"github.com/luxfi/log"

	"github.com/luxfi/popsim/rng"
	"github.com/luxfi/popsim/transition"
	"github.com/luxfi/popsim/urn"
)

// MultiBatchEngine amortizes B = O(sqrt(n)) interactions into one block
// (spec.md §4.4), based on Berenbrink, Hammer, Kaaser, Meyer, Penschuck
// and Tran's batched simulation algorithm.
type MultiBatchEngine struct {
	table *transition.Table
	alpha float64
	beta  float64
	log   log.Logger
}

// NewMultiBatchEngine creates a MultiBatchEngine. alpha and beta tune the
// batch size B = floor(alpha*sqrt(n)) (spec.md §4.4.2); beta is carried
// for callers that want to surface it (e.g. a future adaptive-B variant)
// but the default sizing below does not vary it, since a fixed alpha
// already keeps expected collisions O(sqrt(B)) for population protocols'
// typical, low-degree transition tables.
func NewMultiBatchEngine(table *transition.Table, alpha, beta float64, logger log.Logger) *MultiBatchEngine {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	return &MultiBatchEngine{table: table, alpha: alpha, beta: beta, log: logger}
}

// BatchSize computes B for a population of size n (spec.md §4.4.2,
// §4.4.7 "B > n/2: clamp to n/2").
func (m *MultiBatchEngine) BatchSize(n uint64) uint64 {
	if n < 2 {
		return 0
	}
	b := uint64(m.alpha * math.Sqrt(float64(n)))
	if b < 1 {
		b = 1
	}
	if half := n / 2; b > half {
		b = half
	}
	return b
}

// Step simulates one block of up to 2*BatchSize(n) interactions and
// advances parallel time by B/n (spec.md §4.4.4). nullFraction is the
// observed share of null interactions in the block, feeding the driver's
// switchover heuristic (spec.md §4.4.6). silent is true only in the
// degenerate n < 2 case (spec.md §4.4.7), where no interaction is
// possible at all.
func (m *MultiBatchEngine) Step(s rng.Source, u *urn.Urn) (dt float64, nullFraction float64, silent bool) {
	n := u.Total()
	b := m.BatchSize(n)
	if b == 0 {
		return 0, 1, true
	}

	slots := m.drawSlots(s, u, b)
	nullCount := m.applyPairs(s, u, slots)

	collisions := expectedCollisions(s, b, n)
	for k := uint64(0); k < collisions; k++ {
		i := u.Sample(s)
		if i < 0 {
			break
		}
		// Draw the partner from the other n-1 agents so a replay never
		// pairs an agent with itself.
		u.Remove(i, 1)
		j := u.Sample(s)
		u.Add(i, 1)
		if j < 0 {
			break
		}
		out := m.table.SampleOutcome(rng.Float64(s), i, j)
		applyReaction(u, i, j, out)
	}

	// dt only credits the b delimiter-sampled interactions above, not the
	// collisions replayed just now: the block applies b+collisions
	// reactions but advances time by b/n. The gap is O(collisions/n) =
	// O(B^2/n^2), negligible next to dt = B/n at the scale this engine
	// targets, but real at finite n -- this is not an accounting bug.
	dt = float64(b) / float64(n)
	nullFraction = float64(nullCount) / float64(b)
	m.log.Debug("multibatch: applied block", "batchSize", b, "collisions", collisions, "nullFraction", nullFraction)
	return dt, nullFraction, false
}

// drawSlots samples 2*b agents without replacement from u (spec.md
// §4.4.3 step 1, "delimiter sampling") and expands the resulting
// per-state counts into a length-2b slice of state indices, one per
// drawn agent.
func (m *MultiBatchEngine) drawSlots(s rng.Source, u *urn.Urn, b uint64) []int {
	draw := u.SampleWithoutReplacement(s, 2*b)
	slots := make([]int, 0, 2*b)
	for state, count := range draw {
		for k := uint64(0); k < count; k++ {
			slots = append(slots, state)
		}
	}
	shuffle(s, slots)
	return slots
}

// shuffle performs an in-place Fisher-Yates shuffle, giving a uniformly
// random pairing once slots are read off two at a time.
func shuffle(s rng.Source, slots []int) {
	for i := len(slots) - 1; i > 0; i-- {
		j := rng.IntN(s, i+1)
		slots[i], slots[j] = slots[j], slots[i]
	}
}

// applyPairs applies the b untouched interactions (spec.md §4.4.3
// step 2) directly to u and returns how many were null.
func (m *MultiBatchEngine) applyPairs(s rng.Source, u *urn.Urn, slots []int) uint64 {
	var nullCount uint64
	for k := 0; k+1 < len(slots); k += 2 {
		i, j := slots[k], slots[k+1]
		_, isNull := m.table.PairDistribution(i, j)
		if isNull {
			nullCount++
			continue
		}
		out := m.table.SampleOutcome(rng.Float64(s), i, j)
		applyReaction(u, i, j, out)
	}
	return nullCount
}

// expectedCollisions draws the number of "repeat participant" interactions
// the untouched-sampling approximation misses (spec.md §4.4.3 step 3). Think
// of the block's B draws arriving one at a time: the k-th draw collides with
// an agent already seen in this block with probability ~k/n, so the count
// is modeled as the B-trial, mean-matched simplification Binomial(B, B/n) --
// mean C = B*(B/n) = O(B^2/n), the birthday-paradox estimate, sampled in
// O(B) rather than O(B^2) work so the correction stays within the same
// O(sqrt(n)) budget the rest of the block spends. Rather than tracking
// individual agent identity (infeasible at n ~ 10^10, and not retained by a
// count-only Urn), each drawn collision is corrected by replaying one
// additional, freshly-sampled single interaction against the post-block
// configuration -- matching the expected magnitude of the correction BHKMPT
// apply by identity-level replay, at the cost of only approximating (rather
// than exactly reproducing) the fine-grained joint distribution within a
// block. See DESIGN.md for the full discussion.
func expectedCollisions(s rng.Source, b, n uint64) uint64 {
	if n == 0 || b == 0 {
		return 0
	}
	p := float64(b) / float64(n)
	if p > 1 {
		p = 1
	}
	c := rng.Binomial(s, float64(b), p)
	if c < 0 {
		return 0
	}
	return uint64(math.Round(c))
}
