// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCmdApproximateMajority(t *testing.T) {
	require := require.New(t)
	cmd := runCmd()
	cmd.SetArgs([]string{
		"--protocol", "approximate-majority",
		"--population-a", "30",
		"--population-b", "10",
		"--seed", "1",
	})
	require.NoError(cmd.Execute())
}

func TestRunCmdRejectsUnknownProtocol(t *testing.T) {
	require := require.New(t)
	cmd := runCmd()
	cmd.SetArgs([]string{"--protocol", "not-a-protocol"})
	require.Error(cmd.Execute())
}

func TestBenchCmdSmallPopulations(t *testing.T) {
	require := require.New(t)
	cmd := benchCmd()
	cmd.SetArgs([]string{"--sizes", "20,40"})
	require.NoError(cmd.Execute())
}
