// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/luxfi/popsim/transition"
)

// fileOptions is the YAML-on-disk shape of Options, using a named
// transition order so config files stay human-readable (mirrors the
// teacher's network-config YAML conventions).
type fileOptions struct {
	TransitionOrder          string  `yaml:"transition_order"`
	Seed                     int64   `yaml:"seed"`
	MaxStates                int     `yaml:"max_states"`
	GillespieSwitchThreshold float64 `yaml:"gillespie_switch_threshold"`
	BatchAlpha               float64 `yaml:"batch_alpha"`
	BatchBeta                float64 `yaml:"batch_beta"`
	HistoryCadence           float64 `yaml:"history_cadence"`
}

func orderFromName(name string) (transition.Order, error) {
	switch name {
	case "", "asymmetric":
		return transition.Asymmetric, nil
	case "symmetric":
		return transition.Symmetric, nil
	case "both":
		return transition.Both, nil
	default:
		return 0, fmt.Errorf("%w: unknown transition_order %q", ErrInvalidConfig, name)
	}
}

func nameFromOrder(o transition.Order) string {
	switch o {
	case transition.Symmetric:
		return "symmetric"
	case transition.Both:
		return "both"
	default:
		return "asymmetric"
	}
}

// LoadOptionsFile reads Options from a YAML file, mirroring the
// teacher's file-based network-config loading (`config.Load`).
func LoadOptionsFile(path string) (Options, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f fileOptions
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return Options{}, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}

	order, err := orderFromName(f.TransitionOrder)
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		TransitionOrder:          order,
		Seed:                     f.Seed,
		MaxStates:                f.MaxStates,
		GillespieSwitchThreshold: f.GillespieSwitchThreshold,
		BatchAlpha:               f.BatchAlpha,
		BatchBeta:                f.BatchBeta,
		HistoryCadence:           f.HistoryCadence,
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// WriteOptionsFile writes opts to path as YAML, the inverse of
// LoadOptionsFile.
func WriteOptionsFile(path string, opts Options) error {
	f := fileOptions{
		TransitionOrder:          nameFromOrder(opts.TransitionOrder),
		Seed:                     opts.Seed,
		MaxStates:                opts.MaxStates,
		GillespieSwitchThreshold: opts.GillespieSwitchThreshold,
		BatchAlpha:               opts.BatchAlpha,
		BatchBeta:                opts.BatchBeta,
		HistoryCadence:           opts.HistoryCadence,
	}
	out, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("config: marshalling options: %w", err)
	}
	return os.WriteFile(path, out, 0o644)
}
