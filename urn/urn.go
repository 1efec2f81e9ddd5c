// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package urn implements the multiset over state indices the simulation
// engines use as the single source of truth for the current
// configuration (spec.md §3, §4.2): a segment tree supporting O(log q)
// single-element sampling and sampling-without-replacement of a batch
// in one walk of the tree.
package urn

import "github.com/luxfi/popsim/rng"

// Urn is a segment-tree-backed multiset over q state indices.
type Urn struct {
	q      int
	size   int // next power of two >= q
	counts []uint64
	sums   []uint64 // sums[1] is the root; leaves live at sums[size:size+size]
}

// New creates an Urn over q states initialized from counts, where
// counts[i] is the number of agents in state i.
func New(counts []uint64) *Urn {
	q := len(counts)
	size := nextPow2(q)
	u := &Urn{
		q:      q,
		size:   size,
		counts: make([]uint64, q),
		sums:   make([]uint64, 2*size),
	}
	copy(u.counts, counts)
	for i := 0; i < q; i++ {
		u.sums[size+i] = counts[i]
	}
	for i := size - 1; i >= 1; i-- {
		u.sums[i] = u.sums[2*i] + u.sums[2*i+1]
	}
	return u
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// Total returns the current population size n = sum(c).
func (u *Urn) Total() uint64 {
	if u.size == 0 {
		return 0
	}
	return u.sums[1]
}

// Count returns c[i], the current count of state i.
func (u *Urn) Count(i int) uint64 {
	return u.counts[i]
}

// Counts returns a copy of the full configuration vector c.
func (u *Urn) Counts() []uint64 {
	out := make([]uint64, u.q)
	copy(out, u.counts)
	return out
}

// NumStates returns q.
func (u *Urn) NumStates() int {
	return u.q
}

// Add increments c[i] by delta and updates the tree's partial sums.
func (u *Urn) Add(i int, delta uint64) {
	u.counts[i] += delta
	leaf := u.size + i
	u.sums[leaf] += delta
	for leaf > 1 {
		leaf /= 2
		u.sums[leaf] = u.sums[2*leaf] + u.sums[2*leaf+1]
	}
}

// Remove decrements c[i] by delta. Panics if delta > c[i] (invariant I2:
// counts never go negative).
func (u *Urn) Remove(i int, delta uint64) {
	if delta > u.counts[i] {
		panic("urn: remove would make count negative")
	}
	u.counts[i] -= delta
	leaf := u.size + i
	u.sums[leaf] -= delta
	for leaf > 1 {
		leaf /= 2
		u.sums[leaf] = u.sums[2*leaf] + u.sums[2*leaf+1]
	}
}

// Sample draws a single index i with probability c[i]/Total() in
// O(log q) by descending the tree against a uniform draw in [0, Total).
func (u *Urn) Sample(s rng.Source) int {
	total := u.Total()
	if total == 0 {
		return -1
	}
	target := rng.Uint64N(s, total)
	node := 1
	for node < u.size {
		left := u.sums[2*node]
		if target < left {
			node = 2 * node
		} else {
			target -= left
			node = 2*node + 1
		}
	}
	return node - u.size
}

// SampleWithoutReplacement draws a multiset of k agents without
// replacement and returns d, where d[i] <= c[i] and sum(d) == k, by
// walking the tree once and splitting k between each node's children via
// a hypergeometric draw over the children's subtree totals (spec.md
// §4.2). Each tree node is visited at most once, but each split costs
// what rng.Hypergeometric costs, which is O(draws) for up to 65536
// draws; for such k the whole walk is O(q + k*log q), not O(q).
func (u *Urn) SampleWithoutReplacement(s rng.Source, k uint64) []uint64 {
	d := make([]uint64, u.q)
	if k == 0 {
		return d
	}
	if k > u.Total() {
		panic("urn: cannot sample more than the population without replacement")
	}
	u.splitNode(s, 1, k, d)
	return d
}

func (u *Urn) splitNode(s rng.Source, node int, k uint64, d []uint64) {
	if k == 0 {
		return
	}
	if node >= u.size {
		d[node-u.size] = k
		return
	}
	left := u.sums[2*node]
	right := u.sums[2*node+1]
	leftDraw := rng.Hypergeometric(s, left, right, k)
	u.splitNode(s, 2*node, leftDraw, d)
	u.splitNode(s, 2*node+1, k-leftDraw, d)
}
