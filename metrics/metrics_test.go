// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewWithNilRegistererUsesPrivateRegistry(t *testing.T) {
	require := require.New(t)
	m, err := New(nil)
	require.NoError(err)
	require.NotNil(m.BlockSize)
	require.NotNil(m.NullFraction)
	require.NotNil(m.EngineSwitches)
	require.NotNil(m.Snapshots)
}

func TestNewTwiceAgainstSameRegistererCollides(t *testing.T) {
	require := require.New(t)
	reg := prometheus.NewRegistry()

	_, err := New(reg)
	require.NoError(err)

	_, err = New(reg)
	require.Error(err)
}

func TestNoOpNeverCollidesAcrossInstances(t *testing.T) {
	require := require.New(t)
	require.NotPanics(func() {
		NoOp()
		NoOp()
	})
}
