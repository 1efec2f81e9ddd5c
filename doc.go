// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.

/*
Package popsim simulates population protocols: a population of n
indistinguishable agents, each holding a state drawn from a finite set Q,
evolving by repeatedly applying a transition rule to a uniformly random
pair of distinct agents. It provides the stochastic simulation engine
only -- rule authoring, history-dataframe construction, and plotting are
left to callers.

# Overview

A Simulation is built from an initial configuration (a count per state)
and a rule, either a deterministic function, an explicit map, or a
randomized distribution map. The engine enumerates the reachable state
set Q, compiles the rule into an indexed TransitionTable, and then
alternates between two execution strategies as it runs:

  - MultiBatchEngine amortizes O(sqrt(n)) interactions into one block,
    used while a meaningful fraction of sampled pairs actually react.
  - GillespieEngine samples the next non-null reaction directly, used
    once the population is overwhelmingly silent and batching would
    waste work sampling pairs that do nothing.

# Example

	rule := popsim.FromDeterministicRule(func(x, y string) (string, string) {
		switch {
		case x == "A" && y == "B":
			return "U", "U"
		case x == "A" && y == "U":
			return "A", "A"
		case x == "B" && y == "U":
			return "B", "B"
		default:
			return x, y
		}
	})

	sim, err := popsim.NewSimulation(map[string]uint64{"A": 60, "B": 40}, rule, config.DefaultOptions, nil, nil)
	if err != nil {
		log.Fatal(err)
	}
	if err := sim.Run(context.Background(), popsim.Stop[string]{}); err != nil {
		log.Fatal(err)
	}
	fmt.Println(sim.ConfigMap())
*/
package popsim
