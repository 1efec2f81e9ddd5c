// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package popsim

import "sync"

// RunTrials runs n independent trials concurrently (spec.md §5 "may be
// run in parallel by the caller"). factory builds a fresh Simulation for
// trial index i -- give each a distinct config.Options.Seed, since
// trials must be statistically independent, not merely thread-safe.
// work is run against each built Simulation once factory succeeds.
//
// RunTrials returns the built simulations in trial-index order, with a
// nil entry wherever factory returned an error.
func RunTrials[T comparable](n int, factory func(trial int) (*Simulation[T], error), work func(trial int, sim *Simulation[T])) ([]*Simulation[T], []error) {
	sims := make([]*Simulation[T], n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(trial int) {
			defer wg.Done()
			sim, err := factory(trial)
			if err != nil {
				errs[trial] = err
				return
			}
			sims[trial] = sim
			if work != nil {
				work(trial, sim)
			}
		}(i)
	}
	wg.Wait()

	return sims, errs
}
