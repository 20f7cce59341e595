// SPDX-License-Identifier: MIT
// Package: builder
//
// config.go - resolved builder configuration and defaults.
//
// Defaults:
//   - title     = ""          (attribute omitted)
//   - runID     = fresh UUID  (one per BuildGraph call)
//   - materials = nil         (Result metadata is used)
//   - processes = nil         (Result metadata is used)

package builder

import (
	"github.com/google/uuid"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// builderConfig is passed by value to constructors.
type builderConfig struct {
	title     string
	runID     string
	materials []network.Material
	processes []network.Process
}

// newBuilderConfig applies opts in order (later overrides earlier).
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runID == "" {
		cfg.runID = uuid.NewString()
	}

	return cfg
}
