// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics instruments the simulation driver and engines with
// Prometheus metrics, following the same registerer-scoped pattern as
// the teacher's metrics.Averager: every Simulation gets its own
// registerer (a private one if the caller doesn't supply one) so that
// independently parallel trials (spec.md §5 "time_trials") never
// collide on metric names.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters and gauges the driver updates once per
// block or step, never per interaction.
type Metrics struct {
	BlockSize      prometheus.Histogram
	NullFraction   prometheus.Gauge
	EngineSwitches prometheus.Counter
	Snapshots      prometheus.Counter
}

// New registers a fresh Metrics against reg. If reg is nil, a private
// registry is created so callers who don't care about metrics don't have
// to plumb one through.
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		BlockSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "popsim_block_size",
			Help:    "Number of interactions amortized into one MultiBatch block.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
		NullFraction: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "popsim_null_fraction",
			Help: "EWMA of the fraction of null interactions over recent blocks.",
		}),
		EngineSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "popsim_engine_switches_total",
			Help: "Number of times the driver switched between MultiBatch and Gillespie.",
		}),
		Snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "popsim_snapshots_total",
			Help: "Number of configuration snapshots recorded to history.",
		}),
	}

	for _, c := range []prometheus.Collector{m.BlockSize, m.NullFraction, m.EngineSwitches, m.Snapshots} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NoOp returns a Metrics instance backed by a private registry, for
// callers that don't want to thread a Registerer through.
func NoOp() *Metrics {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		// Registration against a brand-new private registry cannot
		// fail; a non-nil error here indicates a bug in this package.
		panic(err)
	}
	return m
}
