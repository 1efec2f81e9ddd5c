// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package rng provides the seedable random primitives the simulation
// engines build on: a seedable uniform stream plus the uniform,
// binomial, exponential and hypergeometric draws the batched and
// Gillespie engines need.
package rng

import (
	"math/rand"

	"gonum.org/v1/gonum/mathext/prng"
)

// Source is a source of uniformly distributed 64-bit words. Every draw
// in this package goes through a Source so that a fixed seed reproduces
// an identical stream across platforms.
type Source interface {
	Seed(int64)
	Uint64() uint64
}

// NewSource returns the default Source: gonum's MT19937, a fixed-width
// generator whose output does not depend on the host's math/rand
// algorithm version. MT19937 is a state-table generator, not a
// counter-based one: it cannot be split or jumped to an arbitrary
// position in its stream.
func NewSource(seed int64) Source {
	s := &mt19937Source{mt: prng.NewMT19937()}
	s.Seed(seed)
	return s
}

type mt19937Source struct {
	mt *prng.MT19937
}

func (s *mt19937Source) Seed(seed int64) {
	s.mt.Seed(uint64(seed))
}

func (s *mt19937Source) Uint64() uint64 {
	return s.mt.Uint64()
}

// NewGoRandSource wraps the standard library's math/rand as a Source.
// Kept for callers that need to plug in their own deterministic stream
// without depending on gonum.
func NewGoRandSource(seed int64) Source {
	return &goRandSource{r: rand.New(rand.NewSource(seed))}
}

type goRandSource struct {
	r *rand.Rand
}

func (s *goRandSource) Seed(seed int64) {
	s.r.Seed(seed)
}

func (s *goRandSource) Uint64() uint64 {
	return s.r.Uint64()
}
