// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package transition

import "fmt"

// EnumerateStates performs the breadth-first reachability search of
// spec.md §4.5: starting from the distinct states present in an initial
// configuration, it repeatedly applies rule to every discovered pair and
// adds any new output states to the worklist, until no new state is
// discovered.
//
// maxStates bounds the search (spec.md §9 "Reachability on infinite
// state sets"): if the discovered set would grow past maxStates, the
// search aborts with ErrUnreachable rather than running forever. A
// maxStates <= 0 means unbounded.
func EnumerateStates[T comparable](initial []T, rule RuleFunc[T], maxStates int) ([]T, map[T]int, error) {
	index := make(map[T]int)
	var states []T
	var worklist []T

	add := func(s T) error {
		if _, ok := index[s]; ok {
			return nil
		}
		if maxStates > 0 && len(states) >= maxStates {
			return fmt.Errorf("%w: exceeded %d states", ErrUnreachable, maxStates)
		}
		index[s] = len(states)
		states = append(states, s)
		worklist = append(worklist, s)
		return nil
	}

	for _, s := range initial {
		if err := add(s); err != nil {
			return nil, nil, err
		}
	}

	// Re-scan all discovered pairs whenever the frontier grows; q is
	// assumed small (spec.md §1), so the O(q^2) rescans per round are
	// cheap relative to the O(sqrt(n)) simulation cost they unlock.
	for len(worklist) > 0 {
		worklist = nil
		frontier := append([]T(nil), states...)
		for _, x := range frontier {
			for _, y := range frontier {
				branches := rule(x, y)
				for _, b := range branches {
					if b.Prob == 0 {
						continue
					}
					if err := add(b.Out.X); err != nil {
						return nil, nil, err
					}
					if err := add(b.Out.Y); err != nil {
						return nil, nil, err
					}
				}
			}
		}
	}

	return states, index, nil
}
