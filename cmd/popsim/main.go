// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "popsim",
	Short: "Population protocol simulation tools",
	Long: `popsim runs stochastic simulations of population protocols: a
population of anonymous agents that converge on a result by repeatedly
applying a transition rule to uniformly random pairs.

Key Features:
- Built-in example protocols (approximate majority, exact majority,
  discrete averaging)
- MultiBatch/Gillespie adaptive simulation engine
- Interactions/sec benchmarking across population sizes`,
}

func main() {
	rootCmd.AddCommand(
		runCmd(),
		benchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
