// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config holds the simulation's tunable options: transition
// order, RNG seed, the Gillespie/MultiBatch switchover threshold and the
// batch-size tuning knobs (spec.md §6, §9 "Gillespie/Batched crossover
// parameter... make it a named, documented configuration option").
package config

import (
	"fmt"

	"github.com/luxfi/popsim/transition"
)

// Options configures a Simulation.
type Options struct {
	// TransitionOrder controls how the rule is expanded into a table
	// (spec.md §4.1).
	TransitionOrder transition.Order

	// Seed initializes the deterministic RNG stream (spec.md §6).
	Seed int64

	// MaxStates bounds the ReachabilityBuilder's BFS (spec.md §9). Zero
	// means unbounded.
	MaxStates int

	// GillespieSwitchThreshold is the null-interaction fraction above
	// which the driver switches from MultiBatch to Gillespie
	// (spec.md §4.4.6). Must be in (0, 1).
	GillespieSwitchThreshold float64

	// BatchAlpha sets the batch size B = floor(alpha * sqrt(n))
	// (spec.md §4.4.2). BatchBeta is validated and handed to the
	// MultiBatch engine, but it does not change B or bound the
	// collision count.
	BatchAlpha float64
	BatchBeta  float64

	// HistoryCadence is the parallel-time interval between recorded
	// snapshots (spec.md §3 "History"). Zero records every step.
	HistoryCadence float64
}

// Validate checks Options against the invariants above.
func (o Options) Validate() error {
	if o.GillespieSwitchThreshold <= 0 || o.GillespieSwitchThreshold >= 1 {
		return fmt.Errorf("%w: GillespieSwitchThreshold must be in (0,1), got %v", ErrInvalidConfig, o.GillespieSwitchThreshold)
	}
	if o.BatchAlpha <= 0 {
		return fmt.Errorf("%w: BatchAlpha must be > 0, got %v", ErrInvalidConfig, o.BatchAlpha)
	}
	if o.BatchBeta <= 0 {
		return fmt.Errorf("%w: BatchBeta must be > 0, got %v", ErrInvalidConfig, o.BatchBeta)
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("%w: MaxStates must be >= 0, got %v", ErrInvalidConfig, o.MaxStates)
	}
	if o.HistoryCadence < 0 {
		return fmt.Errorf("%w: HistoryCadence must be >= 0, got %v", ErrInvalidConfig, o.HistoryCadence)
	}
	return nil
}
