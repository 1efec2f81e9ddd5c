// Copyright (C) 2020-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

// ErrInvalidConfig is returned when an initial configuration or option
// set fails validation (spec.md §7).
var ErrInvalidConfig = errors.New("config: invalid configuration")
