// SPDX-License-Identifier: MIT
// Package: builder
//
// api.go - public entry points: BuildGraph orchestrates constructors,
// FromResult wires the standard sequence for a series.Result.

package builder

import (
	"fmt"

	"github.com/yosukefk/chemnetrowk-vis/core"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

// Constructor applies one deterministic mutation to g using the resolved
// builderConfig. Constructors return errors and never panic.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildGraph creates a core.Graph with gopts, resolves bopts and applies
// cons in order. The first failing constructor aborts the build.
//
// Complexity: O(len(bopts)) plus the cost of each constructor.
// Errors: wrapped as "BuildGraph: %w"; branch with errors.Is on
// ErrNilResult, ErrConstructFailed or core sentinels.
func BuildGraph(gopts []core.GraphOption, bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph(gopts...)
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	return g, nil
}

// FromResult builds the directed flow graph of res: Nodes, Links, then
// Metadata.
func FromResult(res *series.Result, opts ...BuilderOption) (*core.Graph, error) {
	return BuildGraph(
		[]core.GraphOption{core.WithDirected(true)},
		opts,
		Nodes(res), Links(res), Metadata(res),
	)
}
