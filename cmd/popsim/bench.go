// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxfi/popsim"
	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/examples"
)

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark interactions/sec across population sizes",
		Long: `Run the approximate majority protocol to silence at a handful of
population sizes, reporting wall-clock duration and an estimated
interactions/sec throughput for each.`,
		RunE: runBench,
	}

	cmd.Flags().IntSlice("sizes", []int{100, 10_000, 1_000_000}, "population sizes to benchmark")
	cmd.Flags().String("preset", "default", "config preset: default, fast, large")

	return cmd
}

func runBench(cmd *cobra.Command, _ []string) error {
	sizes, _ := cmd.Flags().GetIntSlice("sizes")
	presetName, _ := cmd.Flags().GetString("preset")

	opts, err := config.GetOptionsByName(presetName)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-12s %-16s\n", "population", "duration", "interactions/sec")
	for _, n := range sizes {
		a := n / 2
		b := n - a
		sim, err := popsim.NewSimulation(map[string]uint64{
			examples.StateA: uint64(a),
			examples.StateB: uint64(b),
		}, examples.ApproximateMajority(), opts, nil, nil)
		if err != nil {
			return err
		}

		start := time.Now()
		if err := sim.Run(context.Background(), popsim.Stop[string]{}); err != nil {
			return err
		}
		elapsed := time.Since(start)

		interactions := sim.Time() * float64(n)
		rate := interactions / elapsed.Seconds()
		fmt.Printf("%-12d %-12s %-16.0f\n", n, elapsed.Round(time.Millisecond), rate)
	}
	return nil
}
