// SPDX-License-Identifier: MIT
// File: options.go
// Role: functional options for New.
// Option constructors validate their arguments and panic on meaningless
// input; New itself only returns errors.

package casedata

import (
	"io"
	"log/slog"
	"math"

	"github.com/yosukefk/chemnetrowk-vis/flow"
)

// Option customizes how New derives the tables of a Case.
type Option func(*caseConfig)

type caseConfig struct {
	unit         float64
	ignored      map[string]bool
	condense     map[string][]string
	condensePgrp bool
	tolerance    float64
	logger       *slog.Logger
}

func newCaseConfig(opts ...Option) caseConfig {
	cfg := caseConfig{
		unit:      1,
		ignored:   map[string]bool{},
		tolerance: flow.DefaultTolerance,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithUnitConversion multiplies throughput, demand, supply and group
// demand by f. Panics unless f is finite and non-zero.
func WithUnitConversion(f float64) Option {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		panic("casedata: WithUnitConversion(f) requires a finite non-zero factor")
	}
	return func(c *caseConfig) { c.unit = f }
}

// WithIgnored excludes materials (typically utilities such as steam or
// electricity) from every table. Repeated calls accumulate.
func WithIgnored(ids ...string) Option {
	return func(c *caseConfig) {
		for _, id := range ids {
			c.ignored[id] = true
		}
	}
}

// WithCondensation remaps the members of each group onto the group id.
// The map is copied.
func WithCondensation(groups map[string][]string) Option {
	cp := make(map[string][]string, len(groups))
	for grp, mems := range groups {
		cp[grp] = append([]string(nil), mems...)
	}
	return func(c *caseConfig) { c.condense = cp }
}

// WithProductGroupCondensation also condenses the document's product
// groups (pgrp_i). Explicit WithCondensation entries win on collision.
func WithProductGroupCondensation() Option {
	return func(c *caseConfig) { c.condensePgrp = true }
}

// WithTolerance sets the relative mass-balance tolerance. Panics if tol is
// negative or NaN.
func WithTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("casedata: WithTolerance(tol<0)")
	}
	return func(c *caseConfig) { c.tolerance = tol }
}

// WithLogger routes table derivation and mass-balance messages to l.
// Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("casedata: WithLogger(nil)")
	}
	return func(c *caseConfig) { c.logger = l }
}
