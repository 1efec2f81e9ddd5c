// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package simulation implements the SimulationDriver (spec.md §4.6): it
// owns the Urn and configuration vector, chooses between the
// MultiBatchEngine and GillespieEngine per block, advances simulated
// time, enforces stop conditions, and records history. It operates
// purely on dense state indices; the generic, hashable-state-object
// facade lives in the root popsim package.
package simulation

import (
	"context"
	"time"

	"github.com/luxfi/log"

	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/engine"
	"github.com/luxfi/popsim/metrics"
	"github.com/luxfi/popsim/rng"
	"github.com/luxfi/popsim/transition"
	"github.com/luxfi/popsim/urn"
)

// Stop describes when Run should return. A zero-value Stop (all fields
// nil/unset) means "run until silent" (spec.md §4.6).
type Stop struct {
	// HasTime, if true, stops the run once parallel time reaches Time.
	HasTime bool
	Time    float64

	// Predicate, if non-nil, stops the run once it returns true. It is
	// only evaluated right after a snapshot is recorded, not on every
	// interaction (spec.md §4.6.3).
	Predicate func(counts []uint64) bool

	// Deadline, if non-nil, bounds wall-clock time. Checked between
	// blocks (spec.md §5).
	Deadline *time.Time

	// Cancel, if non-nil, is polled between blocks for cooperative
	// cancellation (spec.md §5).
	Cancel <-chan struct{}
}

// Driver is the SimulationDriver of spec.md §4.6.
type Driver struct {
	table *transition.Table
	urn   *urn.Urn
	src   rng.Source

	gillespie  *engine.GillespieEngine
	multibatch *engine.MultiBatchEngine
	usingGillespie bool
	nullEWMA       float64

	opts    config.Options
	metrics *metrics.Metrics
	log     log.Logger

	t       float64
	history *History
}

// New builds a Driver over table, starting from the given per-state
// counts, configured by opts.
func New(table *transition.Table, initialCounts []uint64, opts config.Options, logger log.Logger, m *metrics.Metrics) (*Driver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNoOpLogger()
	}
	if m == nil {
		m = metrics.NoOp()
	}

	u := urn.New(initialCounts)
	d := &Driver{
		table:      table,
		urn:        u,
		src:        rng.NewSource(opts.Seed),
		gillespie:  engine.NewGillespieEngine(table, logger),
		multibatch: engine.NewMultiBatchEngine(table, opts.BatchAlpha, opts.BatchBeta, logger),
		opts:       opts,
		metrics:    m,
		log:        logger,
		history:    newHistory(opts.HistoryCadence),
	}
	d.recordSnapshot()
	return d, nil
}

// Counts returns the current configuration vector c (a copy).
func (d *Driver) Counts() []uint64 {
	return d.urn.Counts()
}

// Time returns the current parallel time t.
func (d *Driver) Time() float64 {
	return d.t
}

// History returns the recorded (t, c) stream (spec.md §4.6 "history()").
func (d *Driver) History() *History {
	return d.history
}

// Reset reinitializes the configuration, clock and history, keeping the
// same table and options (spec.md §4.6 "reset(new_initial_config)").
func (d *Driver) Reset(newInitialCounts []uint64) {
	d.urn = urn.New(newInitialCounts)
	d.t = 0
	d.usingGillespie = false
	d.nullEWMA = 0
	d.history = newHistory(d.opts.HistoryCadence)
	d.recordSnapshot()
}

// Run advances the simulation until stop is satisfied or the
// configuration goes silent, returning nil on normal termination or one
// of ErrCancelled/ErrTimeout.
func (d *Driver) Run(ctx context.Context, stop Stop) error {
	for {
		if err := checkCancellation(ctx, stop); err != nil {
			return err
		}

		dt, silent, err := d.step()
		if err != nil {
			return err
		}
		if silent {
			d.log.Debug("simulation: configuration is silent", "t", d.t)
			d.recordSnapshot()
			return nil
		}

		d.t += dt
		snapped := d.maybeRecordSnapshot()

		if stop.HasTime && d.t >= stop.Time {
			if !snapped {
				d.recordSnapshot()
			}
			return nil
		}
		if snapped && stop.Predicate != nil && stop.Predicate(d.urn.Counts()) {
			return nil
		}
	}
}

func checkCancellation(ctx context.Context, stop Stop) error {
	if stop.Cancel != nil {
		select {
		case <-stop.Cancel:
			return ErrCancelled
		default:
		}
	}
	if stop.Deadline != nil && time.Now().After(*stop.Deadline) {
		return ErrTimeout
	}
	if ctx != nil {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return ErrTimeout
			}
			return ErrCancelled
		default:
		}
	}
	return nil
}

// step runs one engine step, choosing MultiBatch or Gillespie per the
// switchover heuristic (spec.md §4.4.6), and returns the parallel-time
// advance.
func (d *Driver) step() (dt float64, silent bool, err error) {
	n := d.urn.Total()
	if n < 2 {
		return 0, true, nil
	}

	if d.usingGillespie {
		dt, silent = d.gillespie.Step(d.src, d.urn)
		if silent {
			return dt, true, nil
		}
		d.maybeSwitchToMultiBatch(dt, n)
		return dt, false, nil
	}

	var nullFrac float64
	dt, nullFrac, silent = d.multibatch.Step(d.src, d.urn)
	if silent {
		return dt, true, nil
	}
	d.metrics.BlockSize.Observe(float64(d.multibatch.BatchSize(n)))
	d.updateNullEWMA(nullFrac)
	d.maybeSwitchToGillespie()
	return dt, false, nil
}

// updateNullEWMA maintains the decay-0.1 exponentially weighted moving
// average of the null-interaction fraction (spec.md §4.4.6).
func (d *Driver) updateNullEWMA(observed float64) {
	const decay = 0.1
	d.nullEWMA = decay*observed + (1-decay)*d.nullEWMA
	d.metrics.NullFraction.Set(d.nullEWMA)
}

func (d *Driver) maybeSwitchToGillespie() {
	if d.nullEWMA <= d.opts.GillespieSwitchThreshold {
		return
	}
	d.usingGillespie = true
	d.metrics.EngineSwitches.Inc()
	d.log.Info("simulation: switching to Gillespie engine", "nullEWMA", d.nullEWMA, "t", d.t)
}

// maybeSwitchToMultiBatch switches back once a Gillespie step's dt
// implies the population has become dense again (spec.md §4.4.6
// "Switch back when a Gillespie step's Δt falls below a threshold
// implying density is again high"): dt ~ 1/(A*n), so a dt below a small
// multiple of 1/n means many reactions are enabled again.
func (d *Driver) maybeSwitchToMultiBatch(dt float64, n uint64) {
	threshold := 4 / float64(n)
	if dt >= threshold {
		return
	}
	d.usingGillespie = false
	d.nullEWMA = 0
	d.metrics.EngineSwitches.Inc()
	d.log.Info("simulation: switching to MultiBatch engine", "dt", dt, "t", d.t)
}

func (d *Driver) recordSnapshot() {
	d.history.append(d.t, d.urn.Counts())
	d.metrics.Snapshots.Inc()
}

func (d *Driver) maybeRecordSnapshot() bool {
	if !d.history.dueAt(d.t) {
		return false
	}
	d.recordSnapshot()
	return true
}

// EnabledReactions filters table.Reactions() to those with non-zero
// current propensity (spec.md §6 "enabled_reactions").
func (d *Driver) EnabledReactions() []transition.Reaction {
	var out []transition.Reaction
	counts := d.urn.Counts()
	for _, r := range d.table.Reactions() {
		ci := counts[r.I]
		if r.I == r.J {
			if ci >= 2 {
				out = append(out, r)
			}
			continue
		}
		if ci > 0 && counts[r.J] > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Silent reports whether the current configuration has zero total
// propensity (spec.md §3 invariant I5).
func (d *Driver) Silent() bool {
	if d.urn.Total() < 2 {
		return true
	}
	return len(d.EnabledReactions()) == 0
}
