// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/popsim"
	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/examples"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a built-in example protocol to silence or a time horizon",
		Long: `Run one of the built-in example population protocols
(approximate-majority, exact-majority, discrete-averaging) and print
the final configuration.`,
		RunE: runRun,
	}

	cmd.Flags().String("protocol", "approximate-majority", "protocol: approximate-majority, exact-majority, discrete-averaging")
	cmd.Flags().String("preset", "default", "config preset: default, fast, large")
	cmd.Flags().Int64("seed", 0, "RNG seed")
	cmd.Flags().Int("population-a", 60, "initial count of the A/a state")
	cmd.Flags().Int("population-b", 40, "initial count of the B/b state")
	cmd.Flags().Int("max-value", 100, "discrete-averaging: max integer state value")
	cmd.Flags().Int("agents", 100, "discrete-averaging: number of agents")
	cmd.Flags().Float64("time-horizon", 0, "stop at this parallel time (0 = run until silent)")
	cmd.Flags().String("csv", "", "if set, write the recorded history to this CSV file")

	return cmd
}

func runRun(cmd *cobra.Command, _ []string) error {
	protocol, _ := cmd.Flags().GetString("protocol")
	presetName, _ := cmd.Flags().GetString("preset")
	seed, _ := cmd.Flags().GetInt64("seed")
	a, _ := cmd.Flags().GetInt("population-a")
	b, _ := cmd.Flags().GetInt("population-b")
	maxValue, _ := cmd.Flags().GetInt("max-value")
	agents, _ := cmd.Flags().GetInt("agents")
	horizon, _ := cmd.Flags().GetFloat64("time-horizon")
	csvPath, _ := cmd.Flags().GetString("csv")

	opts, err := config.GetOptionsByName(presetName)
	if err != nil {
		return err
	}
	opts.Seed = seed

	switch protocol {
	case "approximate-majority":
		return runStringProtocol(examples.ApproximateMajority(), map[string]uint64{
			examples.StateA: uint64(a),
			examples.StateB: uint64(b),
		}, opts, horizon, csvPath)
	case "exact-majority":
		return runStringProtocol(examples.ExactMajority(), map[string]uint64{
			examples.StateA: uint64(a),
			examples.StateB: uint64(b),
		}, opts, horizon, csvPath)
	case "discrete-averaging":
		return runDiscreteAveraging(opts, agents, maxValue, horizon, csvPath)
	default:
		return fmt.Errorf("unknown protocol %q", protocol)
	}
}

func runStringProtocol(rule popsim.RuleFunc[string], initial map[string]uint64, opts config.Options, horizon float64, csvPath string) error {
	sim, err := popsim.NewSimulation(initial, rule, opts, nil, nil)
	if err != nil {
		return err
	}

	stop := popsim.Stop[string]{}
	if horizon > 0 {
		stop.HasTime = true
		stop.Time = horizon
	}
	if err := sim.Run(context.Background(), stop); err != nil {
		return err
	}

	fmt.Printf("final time: %g\n", sim.Time())
	fmt.Printf("final configuration: %v\n", sim.ConfigMap())

	if csvPath != "" {
		return writeHistoryCSV(csvPath, sim)
	}
	return nil
}

func runDiscreteAveraging(opts config.Options, agents, maxValue int, horizon float64, csvPath string) error {
	rng := rand.New(rand.NewSource(opts.Seed))
	initial := make(map[int]uint64, maxValue+1)
	for i := 0; i < agents; i++ {
		v := rng.Intn(maxValue + 1)
		initial[v]++
	}

	sim, err := popsim.NewSimulation(initial, examples.DiscreteAveraging(), opts, nil, nil)
	if err != nil {
		return err
	}

	stop := popsim.Stop[int]{}
	if horizon > 0 {
		stop.HasTime = true
		stop.Time = horizon
	}
	if err := sim.Run(context.Background(), stop); err != nil {
		return err
	}

	fmt.Printf("final time: %g\n", sim.Time())
	fmt.Printf("final configuration: %v\n", sim.ConfigMap())

	if csvPath != "" {
		return writeHistoryCSV(csvPath, sim)
	}
	return nil
}

func writeHistoryCSV[T comparable](path string, sim *popsim.Simulation[T]) error {
	states := sim.StateList()
	labels := make([]string, len(states))
	for i, s := range states {
		labels[i] = fmt.Sprintf("%v", s)
	}
	csv := sim.History().WriteCSV(len(states), labels)
	return os.WriteFile(path, []byte(csv), 0o644)
}
