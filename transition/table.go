// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transition builds the indexed, collision-free encoding of a
// population protocol's transition function δ that the simulation
// engines use on their hot path, and the reachability search that
// discovers the state set Q when a rule is supplied as a callable.
package transition

import (
	"fmt"
	"math"
)

// Pair is an ordered pair of agent states.
type Pair[T any] struct {
	X, Y T
}

// Branch is one possible outcome of an interaction together with the
// probability it occurs. A deterministic rule produces a single branch
// with Prob 1.
type Branch[T any] struct {
	Out  Pair[T]
	Prob float64
}

// RuleFunc is the canonical shape every user-supplied rule is adapted
// to: given an ordered pair of states, return the distribution over
// output pairs. See FromDeterministic, FromMap and FromDistributionMap
// for the adapters matching spec.md §6's three accepted input shapes.
type RuleFunc[T comparable] func(x, y T) []Branch[T]

// FromDeterministic adapts a plain (x,y) -> (x',y') function.
func FromDeterministic[T comparable](f func(x, y T) (T, T)) RuleFunc[T] {
	return func(x, y T) []Branch[T] {
		xp, yp := f(x, y)
		return []Branch[T]{{Out: Pair[T]{X: xp, Y: yp}, Prob: 1}}
	}
}

// FromMap adapts an explicit (x,y) -> (x',y') mapping. Pairs absent from
// the map are treated as null (no state change).
func FromMap[T comparable](m map[Pair[T]]Pair[T]) RuleFunc[T] {
	return func(x, y T) []Branch[T] {
		out, ok := m[Pair[T]{X: x, Y: y}]
		if !ok {
			return []Branch[T]{{Out: Pair[T]{X: x, Y: y}, Prob: 1}}
		}
		return []Branch[T]{{Out: out, Prob: 1}}
	}
}

// FromDistributionMap adapts an explicit (x,y) -> [(p, (x',y'))...]
// mapping. Pairs absent from the map are treated as null.
func FromDistributionMap[T comparable](m map[Pair[T]][]Branch[T]) RuleFunc[T] {
	return func(x, y T) []Branch[T] {
		branches, ok := m[Pair[T]{X: x, Y: y}]
		if !ok {
			return []Branch[T]{{Out: Pair[T]{X: x, Y: y}, Prob: 1}}
		}
		return branches
	}
}

// Order controls how the table builder treats pair ordering.
type Order int

const (
	// Asymmetric calls the rule independently for every ordered pair.
	Asymmetric Order = iota
	// Symmetric calls the rule only for i<=j and copies the entry to
	// (j,i) with outputs swapped, per spec.md §4.1.
	Symmetric
	// Both indicates the caller's rule already distinguishes and
	// supplies both orderings explicitly; no expansion is performed.
	Both
)

// IndexPair is a Pair of dense state indices.
type IndexPair struct {
	I, J int
}

// Entry is one row of the transition table: the distribution over
// output index-pairs for one ordered input index-pair.
type Entry struct {
	Outputs []IndexPair
	Probs   []float64
	IsNull  bool
}

// Reaction is a human-readable, deduplicated, non-null transition
// (spec.md §6 `reactions`).
type Reaction struct {
	I, J      int
	Out       IndexPair
	Prob      float64
	Symmetric bool
}

// Table is the immutable, indexed encoding of δ. Once built it may be
// shared read-only across simulations (spec.md §5).
type Table struct {
	numStates int
	entries   []Entry
}

// NumStates returns |Q|.
func (t *Table) NumStates() int {
	return t.numStates
}

// Get returns the entry for ordered pair (i,j).
func (t *Table) Get(i, j int) Entry {
	return t.entries[i*t.numStates+j]
}

// PairDistribution returns the outcome distribution for an unordered
// agent pair drawn from states i and j. Agents are anonymous beyond
// their state (spec.md §1), so when i != j and the rule is not declared
// Symmetric, which agent plays the rule's first argument is taken to be
// chosen uniformly at random each interaction: PairDistribution mixes
// Get(i,j) and Get(j,i) with equal weight. When i == j, or when the two
// entries already mirror each other (Symmetric order, or a rule that
// happens to be order-independent), the mixture collapses to the single
// shared distribution.
func (t *Table) PairDistribution(i, j int) (branches []Branch[IndexPair], isNull bool) {
	if i == j {
		e := t.Get(i, i)
		return entryBranches(e), e.IsNull
	}
	fwd := t.Get(i, j)
	rev := t.Get(j, i)
	isNull = fwd.IsNull && rev.IsNull
	branches = append(branches, weighted(entryBranches(fwd), 0.5)...)
	branches = append(branches, weighted(entryBranches(rev), 0.5)...)
	return branches, isNull
}

func entryBranches(e Entry) []Branch[IndexPair] {
	out := make([]Branch[IndexPair], len(e.Outputs))
	for k, o := range e.Outputs {
		out[k] = Branch[IndexPair]{Out: o, Prob: e.Probs[k]}
	}
	return out
}

func weighted(branches []Branch[IndexPair], w float64) []Branch[IndexPair] {
	out := make([]Branch[IndexPair], len(branches))
	for k, b := range branches {
		out[k] = Branch[IndexPair]{Out: b.Out, Prob: b.Prob * w}
	}
	return out
}

// SampleOutcome draws one concrete output pair for an interaction
// between an agent in state i and an agent in state j, resolving both
// the role-assignment mixture (PairDistribution) and any randomized-rule
// branch (spec.md §4.1 "Randomized rules").
func (t *Table) SampleOutcome(u01 float64, i, j int) IndexPair {
	branches, _ := t.PairDistribution(i, j)
	var cum float64
	for _, b := range branches {
		cum += b.Prob
		if u01 < cum {
			return b.Out
		}
	}
	return branches[len(branches)-1].Out
}

// Reactions enumerates every distinct non-null transition in the table.
// A pair whose (i,j) and (j,i) entries mirror each other is listed once,
// as (i,j) with i < j and Symmetric set.
func (t *Table) Reactions() []Reaction {
	var out []Reaction
	q := t.numStates
	for i := 0; i < q; i++ {
		for j := 0; j < q; j++ {
			e := t.Get(i, j)
			if e.IsNull {
				continue
			}
			if i > j && sameEntry(e, t.Get(j, i)) {
				continue
			}
			for k, outPair := range e.Outputs {
				out = append(out, Reaction{
					I: i, J: j,
					Out:       outPair,
					Prob:      e.Probs[k],
					Symmetric: i != j && sameEntry(e, t.Get(j, i)),
				})
			}
		}
	}
	return out
}

func sameEntry(a, b Entry) bool {
	if len(a.Outputs) != len(b.Outputs) {
		return false
	}
	for k := range a.Outputs {
		if a.Outputs[k] != swap(b.Outputs[k]) || math.Abs(a.Probs[k]-b.Probs[k]) > probabilityTolerance {
			return false
		}
	}
	return true
}

func swap(p IndexPair) IndexPair {
	return IndexPair{I: p.J, J: p.I}
}

// Build constructs a Table from a RuleFunc over a known, dense state
// index assignment. states[k] is the state object with index k; index
// is its inverse.
func Build[T comparable](states []T, index map[T]int, rule RuleFunc[T], order Order) (*Table, error) {
	q := len(states)
	entries := make([]Entry, q*q)
	var errs errList

	buildOne := func(i, j int) (Entry, error) {
		branches := rule(states[i], states[j])
		return normalize(branches, index, i, j)
	}

	switch order {
	case Symmetric:
		for i := 0; i < q; i++ {
			for j := i; j < q; j++ {
				e, err := buildOne(i, j)
				if err != nil {
					errs.add(fmt.Errorf("(%v,%v): %w", states[i], states[j], err))
					continue
				}
				entries[i*q+j] = e
				entries[j*q+i] = mirror(e)
			}
		}
	default: // Asymmetric, Both
		for i := 0; i < q; i++ {
			for j := 0; j < q; j++ {
				e, err := buildOne(i, j)
				if err != nil {
					errs.add(fmt.Errorf("(%v,%v): %w", states[i], states[j], err))
					continue
				}
				entries[i*q+j] = e
			}
		}
	}

	if errs.errored() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRule, errs.err())
	}
	return &Table{numStates: q, entries: entries}, nil
}

// normalize merges duplicate outputs, drops zero-probability branches,
// verifies the remaining probabilities sum to 1 within tolerance, and
// computes IsNull.
func normalize[T comparable](branches []Branch[T], index map[T]int, i, j int) (Entry, error) {
	merged := make(map[IndexPair]float64)
	order := make([]IndexPair, 0, len(branches))
	for _, b := range branches {
		if b.Prob == 0 {
			continue
		}
		xi, ok := index[b.Out.X]
		if !ok {
			return Entry{}, fmt.Errorf("%w: output state %v not in reachable set", ErrInvalidRule, b.Out.X)
		}
		yi, ok := index[b.Out.Y]
		if !ok {
			return Entry{}, fmt.Errorf("%w: output state %v not in reachable set", ErrInvalidRule, b.Out.Y)
		}
		key := IndexPair{I: xi, J: yi}
		if _, seen := merged[key]; !seen {
			order = append(order, key)
		}
		merged[key] += b.Prob
	}
	if len(order) == 0 {
		return Entry{}, fmt.Errorf("%w: rule produced no outputs", ErrInvalidRule)
	}

	outputs := make([]IndexPair, len(order))
	probs := make([]float64, len(order))
	var sum float64
	for k, key := range order {
		outputs[k] = key
		probs[k] = merged[key]
		sum += merged[key]
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return Entry{}, fmt.Errorf("%w: branch probabilities sum to %v, want 1", ErrInvalidRule, sum)
	}

	isNull := len(outputs) == 1 && outputs[0] == (IndexPair{I: i, J: j}) && math.Abs(probs[0]-1) <= probabilityTolerance
	return Entry{Outputs: outputs, Probs: probs, IsNull: isNull}, nil
}

func mirror(e Entry) Entry {
	outputs := make([]IndexPair, len(e.Outputs))
	for k, o := range e.Outputs {
		outputs[k] = swap(o)
	}
	probs := make([]float64, len(e.Probs))
	copy(probs, e.Probs)
	return Entry{Outputs: outputs, Probs: probs, IsNull: e.IsNull}
}
