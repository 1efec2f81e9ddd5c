// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package simulation

import "errors"

var (
	// ErrCancelled is returned when Run is stopped by a cooperative
	// cancellation signal between blocks (spec.md §5 "Cancellation").
	ErrCancelled = errors.New("simulation: run cancelled")

	// ErrTimeout is returned when Run exceeds its wall-clock deadline
	// (spec.md §5 "Timeouts are enforced with parallel-time-to-wallclock
	// granularity >= one block").
	ErrTimeout = errors.New("simulation: run exceeded deadline")
)
