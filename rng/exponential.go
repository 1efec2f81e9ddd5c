// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rng

import "gonum.org/v1/gonum/stat/distuv"

// Exponential draws a sample from Exponential(rate). Used by the
// Gillespie engine to sample the time to the next non-null reaction.
func Exponential(s Source, rate float64) float64 {
	d := distuv.Exponential{Rate: rate, Src: asRandSource(s)}
	return d.Rand()
}

// Binomial draws a sample from Binomial(trials, p). Used by the
// MultiBatch engine to draw a block's collision count.
func Binomial(s Source, trials float64, p float64) float64 {
	d := distuv.Binomial{N: trials, P: p, Src: asRandSource(s)}
	return d.Rand()
}
