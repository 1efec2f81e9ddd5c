// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transition

import "errors"

var (
	// ErrInvalidRule is returned when a rule's branch probabilities do
	// not sum to 1 within tolerance, or produces no outputs at all.
	ErrInvalidRule = errors.New("transition: invalid rule")

	// ErrUnreachable is returned when reachability enumeration of Q
	// exceeds the caller-configured upper bound without terminating.
	ErrUnreachable = errors.New("transition: state set exceeds configured bound")
)

// probabilityTolerance bounds how far a branch-probability sum may drift
// from 1 before a rule is rejected (spec.md §4.1).
const probabilityTolerance = 1e-12

// errList aggregates multiple validation failures into a single error,
// mirroring the teacher's utils/wrappers.Errs pattern of collecting
// failures from a batch of independent checks before returning.
type errList struct {
	errs []error
}

func (e *errList) add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

func (e *errList) errored() bool {
	return len(e.errs) > 0
}

func (e *errList) err() error {
	switch len(e.errs) {
	case 0:
		return nil
	case 1:
		return e.errs[0]
	default:
		msg := "transition: multiple invalid rule entries:"
		for _, err := range e.errs {
			msg += "\n\t* " + err.Error()
		}
		return errors.New(msg)
	}
}
