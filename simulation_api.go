// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package popsim

import (
	"context"

	"github.com/luxfi/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/metrics"
	"github.com/luxfi/popsim/simulation"
	"github.com/luxfi/popsim/transition"
)

// Re-exported building blocks from package transition, so callers
// authoring a rule only need to import popsim (spec.md §6 Input: rule
// shapes (a)/(b)/(c)).
type (
	Pair[T any]            = transition.Pair[T]
	Branch[T any]          = transition.Branch[T]
	RuleFunc[T comparable] = transition.RuleFunc[T]
	Order                  = transition.Order
)

const (
	Asymmetric = transition.Asymmetric
	Symmetric  = transition.Symmetric
	Both       = transition.Both
)

// FromDeterministicRule adapts a plain (x,y) -> (x',y') function for any
// comparable state type T (spec.md §6 input shape (b)).
func FromDeterministicRule[T comparable](f func(x, y T) (T, T)) RuleFunc[T] {
	return transition.FromDeterministic(f)
}

// FromMapRule adapts an explicit (x,y) -> (x',y') mapping (spec.md §6
// input shape (a)).
func FromMapRule[T comparable](m map[Pair[T]]Pair[T]) RuleFunc[T] {
	return transition.FromMap(m)
}

// FromDistributionMapRule adapts an explicit (x,y) -> [(p,(x',y'))...]
// mapping (spec.md §6 input shape (c)).
func FromDistributionMapRule[T comparable](m map[Pair[T]][]Branch[T]) RuleFunc[T] {
	return transition.FromDistributionMap(m)
}

// ReactionView is a human-readable, state-object-keyed transition,
// mirroring transition.Reaction but decoded back to T (spec.md §6
// `reactions`).
type ReactionView[T comparable] struct {
	X, Y      T
	OutX, OutY T
	Prob      float64
	Symmetric bool
}

// Simulation is the generic, hashable-state-object facade over the
// index-based simulation.Driver (spec.md §6 Input/Output contract).
type Simulation[T comparable] struct {
	states []T
	table  *transition.Table
	driver *simulation.Driver
}

// NewSimulation builds Q by reachability search from initial (spec.md
// §4.5), compiles rule into a TransitionTable (spec.md §4.1), and
// returns a ready-to-run Simulation (spec.md §4.6).
//
// reg may be nil, in which case metrics are registered against a
// private registry (safe for running many Simulations in parallel, e.g.
// for time_trials, spec.md §5).
func NewSimulation[T comparable](initial map[T]uint64, rule RuleFunc[T], opts config.Options, logger log.Logger, reg prometheus.Registerer) (*Simulation[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	initialStates := make([]T, 0, len(initial))
	for s := range initial {
		initialStates = append(initialStates, s)
	}

	states, index, err := transition.EnumerateStates(initialStates, rule, opts.MaxStates)
	if err != nil {
		return nil, err
	}

	table, err := transition.Build(states, index, rule, opts.TransitionOrder)
	if err != nil {
		return nil, err
	}

	counts := make([]uint64, len(states))
	for s, count := range initial {
		counts[index[s]] = count
	}

	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	driver, err := simulation.New(table, counts, opts, logger, m)
	if err != nil {
		return nil, err
	}

	return &Simulation[T]{states: states, table: table, driver: driver}, nil
}

// StateList returns Q with stable indices (spec.md §6 `state_list`).
func (s *Simulation[T]) StateList() []T {
	return append([]T(nil), s.states...)
}

// ConfigMap returns the current configuration as a map (spec.md §6
// `config_dict`).
func (s *Simulation[T]) ConfigMap() map[T]uint64 {
	counts := s.driver.Counts()
	out := make(map[T]uint64, len(counts))
	for i, c := range counts {
		out[s.states[i]] = c
	}
	return out
}

// ConfigArray returns the current configuration in state_list order
// (spec.md §6 `config_array`).
func (s *Simulation[T]) ConfigArray() []uint64 {
	return s.driver.Counts()
}

// Time returns the current parallel time.
func (s *Simulation[T]) Time() float64 {
	return s.driver.Time()
}

// Reactions enumerates every non-null transition, decoded to T (spec.md
// §6 `reactions`).
func (s *Simulation[T]) Reactions() []ReactionView[T] {
	raw := s.table.Reactions()
	out := make([]ReactionView[T], len(raw))
	for k, r := range raw {
		out[k] = ReactionView[T]{
			X: s.states[r.I], Y: s.states[r.J],
			OutX: s.states[r.Out.I], OutY: s.states[r.Out.J],
			Prob: r.Prob, Symmetric: r.Symmetric,
		}
	}
	return out
}

// EnabledReactions filters Reactions to those with non-zero current
// propensity (spec.md §6 `enabled_reactions`).
func (s *Simulation[T]) EnabledReactions() []ReactionView[T] {
	raw := s.driver.EnabledReactions()
	out := make([]ReactionView[T], len(raw))
	for k, r := range raw {
		out[k] = ReactionView[T]{
			X: s.states[r.I], Y: s.states[r.J],
			OutX: s.states[r.Out.I], OutY: s.states[r.Out.J],
			Prob: r.Prob, Symmetric: r.Symmetric,
		}
	}
	return out
}

// Stop describes when Run should return (spec.md §4.6 `run(stop,
// record_step)`). A zero-value Stop means "run until silent".
type Stop[T comparable] struct {
	HasTime   bool
	Time      float64
	Predicate func(config map[T]uint64) bool
	Cancel    <-chan struct{}
}

// Run advances the simulation until stop is satisfied or the
// configuration goes silent.
func (s *Simulation[T]) Run(ctx context.Context, stop Stop[T]) error {
	var predicate func([]uint64) bool
	if stop.Predicate != nil {
		predicate = func(counts []uint64) bool {
			m := make(map[T]uint64, len(counts))
			for i, c := range counts {
				m[s.states[i]] = c
			}
			return stop.Predicate(m)
		}
	}
	return s.driver.Run(ctx, simulation.Stop{
		HasTime:   stop.HasTime,
		Time:      stop.Time,
		Predicate: predicate,
		Cancel:    stop.Cancel,
	})
}

// Reset reinitializes the configuration, clock and history (spec.md
// §4.6 `reset(new_initial_config)`).
func (s *Simulation[T]) Reset(newInitial map[T]uint64) {
	counts := make([]uint64, len(s.states))
	index := make(map[T]int, len(s.states))
	for i, st := range s.states {
		index[st] = i
	}
	for st, c := range newInitial {
		if i, ok := index[st]; ok {
			counts[i] = c
		}
	}
	s.driver.Reset(counts)
}

// History returns the recorded (t, c) stream (spec.md §4.6 `history()`).
func (s *Simulation[T]) History() *simulation.History {
	return s.driver.History()
}

// Silent reports whether the configuration has zero total propensity
// (spec.md §3 invariant I5).
func (s *Simulation[T]) Silent() bool {
	return s.driver.Silent()
}
