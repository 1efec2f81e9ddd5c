// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package engine implements the two interaction-stepping strategies the
// driver chooses between: GillespieEngine (spec.md §4.3), an exact
// event-driven next-reaction sampler, and MultiBatchEngine (spec.md
// §4.4), the batched simulator that amortizes O(sqrt(n)) interactions
// into one block.
package engine

import (
	"math"

	"github.com/luxfi/log"

	"github.com/luxfi/popsim/rng"
	"github.com/luxfi/popsim/transition"
	"github.com/luxfi/popsim/urn"
)

// pairReaction is one canonical (i<=j) unordered state pair's precomputed
// outcome distribution, cached at construction so Step doesn't re-derive
// it from the table on every call.
type pairReaction struct {
	i, j       int
	branches   []transition.Branch[transition.IndexPair]
	isNull     bool
}

// GillespieEngine is the exact, event-driven fallback used when
// batching would be wasted on an almost-entirely-null population
// (spec.md §4.3).
type GillespieEngine struct {
	table     *transition.Table
	reactions []pairReaction
	log       log.Logger
}

// NewGillespieEngine builds the canonical reaction set once from table.
func NewGillespieEngine(table *transition.Table, logger log.Logger) *GillespieEngine {
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	q := table.NumStates()
	var reactions []pairReaction
	for i := 0; i < q; i++ {
		for j := i; j < q; j++ {
			branches, isNull := table.PairDistribution(i, j)
			if isNull {
				continue
			}
			reactions = append(reactions, pairReaction{i: i, j: j, branches: branches, isNull: isNull})
		}
	}
	return &GillespieEngine{table: table, reactions: reactions, log: logger}
}

// Step samples the time to, and the identity of, the next non-null
// reaction (spec.md §4.3). A dt of +Inf signals silence (A == 0): no
// reaction has positive propensity and the configuration will never
// change again.
func (g *GillespieEngine) Step(s rng.Source, u *urn.Urn) (dt float64, silent bool) {
	n := u.Total()
	if n < 2 {
		return math.Inf(1), true
	}
	totalPairs := float64(n) * float64(n-1) / 2

	type weighted struct {
		r    pairReaction
		rate float64
	}
	weights := make([]weighted, 0, len(g.reactions))
	var total float64
	for _, r := range g.reactions {
		var pairCount float64
		ci := float64(u.Count(r.i))
		if r.i == r.j {
			pairCount = ci * (ci - 1) / 2
		} else {
			pairCount = ci * float64(u.Count(r.j))
		}
		if pairCount == 0 {
			continue
		}
		rate := pairCount / totalPairs
		weights = append(weights, weighted{r: r, rate: rate})
		total += rate
	}

	if total == 0 {
		g.log.Debug("gillespie: configuration is silent")
		return math.Inf(1), true
	}

	dt = rng.Exponential(s, total*float64(n))

	target := rng.Float64(s) * total
	var cum float64
	chosen := weights[len(weights)-1].r
	for _, w := range weights {
		cum += w.rate
		if target < cum {
			chosen = w.r
			break
		}
	}

	out := chosen.branches[sampleBranch(s, chosen.branches)].Out
	applyReaction(u, chosen.i, chosen.j, out)

	g.log.Debug("gillespie: applied reaction", "i", chosen.i, "j", chosen.j, "dt", dt)
	return dt, false
}

func sampleBranch(s rng.Source, branches []transition.Branch[transition.IndexPair]) int {
	u01 := rng.Float64(s)
	var cum float64
	for k, b := range branches {
		cum += b.Prob
		if u01 < cum {
			return k
		}
	}
	return len(branches) - 1
}

// applyReaction updates the urn for an interaction between an agent in
// state i and an agent in state j producing out, per spec.md §3
// "Delta entries": remove one agent from each input state (once, if
// i == j removing two from the same state), add one to each output
// state.
func applyReaction(u *urn.Urn, i, j int, out transition.IndexPair) {
	if i == j {
		u.Remove(i, 2)
	} else {
		u.Remove(i, 1)
		u.Remove(j, 1)
	}
	u.Add(out.I, 1)
	u.Add(out.J, 1)
}
