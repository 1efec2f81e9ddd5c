// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "github.com/luxfi/popsim/transition"

// Builder provides a fluent interface for constructing Options,
// mirroring the teacher's config.Builder.
type Builder struct {
	opts Options
}

// NewBuilder creates a new Builder seeded with DefaultOptions.
func NewBuilder() *Builder {
	b := &Builder{opts: DefaultOptions}
	return b
}

func (b *Builder) WithTransitionOrder(order transition.Order) *Builder {
	b.opts.TransitionOrder = order
	return b
}

func (b *Builder) WithSeed(seed int64) *Builder {
	b.opts.Seed = seed
	return b
}

func (b *Builder) WithMaxStates(max int) *Builder {
	b.opts.MaxStates = max
	return b
}

func (b *Builder) WithGillespieSwitchThreshold(threshold float64) *Builder {
	b.opts.GillespieSwitchThreshold = threshold
	return b
}

func (b *Builder) WithBatchTuning(alpha, beta float64) *Builder {
	b.opts.BatchAlpha = alpha
	b.opts.BatchBeta = beta
	return b
}

func (b *Builder) WithHistoryCadence(cadence float64) *Builder {
	b.opts.HistoryCadence = cadence
	return b
}

// Build validates and returns the constructed Options.
func (b *Builder) Build() (Options, error) {
	if err := b.opts.Validate(); err != nil {
		return Options{}, err
	}
	return b.opts, nil
}
