// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rng

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// exactHypergeometricLimit bounds the draw count below which
// Hypergeometric uses the exact sequential algorithm. Above it, the
// normal approximation is used; the urn package only ever calls this
// with draw counts on the order of a batch size (O(sqrt(n))), so the
// exact path is the common case for realistic populations and the
// approximation only engages for very large batches.
const exactHypergeometricLimit = 1 << 16

// Hypergeometric draws the number of "left" successes when drawing
// drawCount elements without replacement from a population partitioned
// into left (size left) and right (size right) groups. It is the
// primitive the Urn's segment tree uses to split a without-replacement
// batch between a node's two children.
func Hypergeometric(s Source, left, right, drawCount uint64) uint64 {
	total := left + right
	if drawCount == 0 || total == 0 {
		return 0
	}
	if drawCount >= total {
		return left
	}
	if left == 0 {
		return 0
	}
	if right == 0 {
		return drawCount
	}

	if drawCount <= exactHypergeometricLimit {
		return exactHypergeometric(s, left, total, drawCount)
	}
	return approximateHypergeometric(s, left, total, drawCount)
}

// exactHypergeometric simulates drawCount sequential without-replacement
// picks against a population of size total with `left` marked elements,
// updating the marked/remaining counts after each pick. This is exact
// and runs in O(drawCount).
func exactHypergeometric(s Source, left, total, drawCount uint64) uint64 {
	marked := left
	remaining := total
	var successes uint64
	for i := uint64(0); i < drawCount; i++ {
		if Float64(s)*float64(remaining) < float64(marked) {
			successes++
			marked--
		}
		remaining--
	}
	return successes
}

// approximateHypergeometric uses a continuity-corrected normal
// approximation, valid when drawCount is large enough that the
// hypergeometric distribution is well approximated by a Gaussian. The
// result is clamped to the support of the true distribution.
func approximateHypergeometric(s Source, left, total, drawCount uint64) uint64 {
	n := float64(drawCount)
	N := float64(total)
	K := float64(left)

	mean := n * K / N
	variance := n * (K / N) * (1 - K/N) * (N - n) / (N - 1)
	if variance < 0 {
		variance = 0
	}

	d := distuv.Normal{Mu: mean, Sigma: math.Sqrt(variance), Src: asRandSource(s)}
	draw := math.Round(d.Rand())

	lo := float64(0)
	if n > N-K {
		lo = n - (N - K)
	}
	hi := n
	if K < hi {
		hi = K
	}
	if draw < lo {
		draw = lo
	}
	if draw > hi {
		draw = hi
	}
	return uint64(draw)
}
