// SPDX-License-Identifier: MIT
// Package: builder
//
// options.go - functional options for BuildGraph and FromResult.
// Option constructors validate and panic on meaningless input;
// constructors themselves only return errors.

package builder

import (
	"github.com/google/uuid"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// BuilderOption customizes graph assembly.
type BuilderOption func(*builderConfig)

// WithTitle sets the graph title attribute.
func WithTitle(title string) BuilderOption {
	return func(c *builderConfig) { c.title = title }
}

// WithRunID pins the run identifier (tests, reproducible exports).
// Panics unless id parses as a UUID.
func WithRunID(id string) BuilderOption {
	if _, err := uuid.Parse(id); err != nil {
		panic("builder: WithRunID requires a UUID: " + err.Error())
	}
	return func(c *builderConfig) { c.runID = id }
}

// WithMaterialDefs overrides the material metadata of the Result.
func WithMaterialDefs(defs []network.Material) BuilderOption {
	cp := append([]network.Material(nil), defs...)
	return func(c *builderConfig) { c.materials = cp }
}

// WithProcessDefs overrides the process metadata of the Result.
func WithProcessDefs(defs []network.Process) BuilderOption {
	cp := append([]network.Process(nil), defs...)
	return func(c *builderConfig) { c.processes = cp }
}
