// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/luxfi/popsim/transition"
)

// DefaultOptions is a balanced preset suitable for most runs.
var DefaultOptions = Options{
	TransitionOrder:          transition.Asymmetric,
	Seed:                     0,
	MaxStates:                4096,
	GillespieSwitchThreshold: 0.99,
	BatchAlpha:               1.0,
	BatchBeta:                1.0,
	HistoryCadence:           1.0,
}

// FastOptions favors quick, fine-grained feedback for small debugging
// runs over throughput.
var FastOptions = Options{
	TransitionOrder:          transition.Asymmetric,
	Seed:                     0,
	MaxStates:                1024,
	GillespieSwitchThreshold: 0.95,
	BatchAlpha:               0.5,
	BatchBeta:                1.0,
	HistoryCadence:           0.1,
}

// LargePopulationOptions is tuned for populations approaching the
// n ~ 10^10 scale spec.md §1 targets: a larger batch multiplier amortizes
// more interactions per block, and a coarser history cadence keeps the
// recorded history from dominating memory (spec.md §5 "Memory").
var LargePopulationOptions = Options{
	TransitionOrder:          transition.Asymmetric,
	Seed:                     0,
	MaxStates:                4096,
	GillespieSwitchThreshold: 0.999,
	BatchAlpha:               2.0,
	BatchBeta:                1.5,
	HistoryCadence:           10.0,
}

// GetOptionsByName looks up a named preset, mirroring the teacher's
// config.GetParametersByName network-preset lookup.
func GetOptionsByName(name string) (Options, error) {
	switch name {
	case "default", "":
		return DefaultOptions, nil
	case "fast":
		return FastOptions, nil
	case "large":
		return LargePopulationOptions, nil
	default:
		return Options{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidConfig, name)
	}
}
