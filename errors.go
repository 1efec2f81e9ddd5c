// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package popsim

import (
	"github.com/luxfi/popsim/config"
	"github.com/luxfi/popsim/simulation"
	"github.com/luxfi/popsim/transition"
)

// Error kinds re-exported from the subpackages that raise them (spec.md
// §7): each is defined where it is returned, so use errors.Is against
// these aliases rather than the subpackage directly when working through
// the popsim facade.
var (
	ErrInvalidRule   = transition.ErrInvalidRule
	ErrInvalidConfig = config.ErrInvalidConfig
	ErrUnreachable   = transition.ErrUnreachable
	ErrCancelled     = simulation.ErrCancelled
	ErrTimeout       = simulation.ErrTimeout
)
