// SPDX-License-Identifier: MIT
// File: types.go
// Role: inputs, options, results and errors of the aggregator.

package series

import (
	"errors"
	"fmt"

	"github.com/yosukefk/chemnetrowk-vis/casedata"
	"github.com/yosukefk/chemnetrowk-vis/network"
)

var (
	// ErrNoScenarios is returned by Aggregate for an empty input.
	ErrNoScenarios = errors.New("series: no scenarios")

	// ErrDuplicateLabel is returned when two scenarios share a label.
	ErrDuplicateLabel = errors.New("series: duplicate scenario label")

	// ErrEmptyLabel is returned for a scenario without a label.
	ErrEmptyLabel = errors.New("series: empty scenario label")

	// ErrMixedCondensation is returned when some scenarios condensed their
	// product groups and others did not.
	ErrMixedCondensation = errors.New("series: product-group condensation differs between scenarios")

	// ErrEmptyGroup classifies EmptyGroupError.
	ErrEmptyGroup = errors.New("series: product group has no flux")
)

// EmptyGroupError reports a product group whose members carry zero total
// flux, so its demand cannot be apportioned.
type EmptyGroupError struct {
	Group   string
	Members []string
}

func (e *EmptyGroupError) Error() string {
	return fmt.Sprintf("series: product group %q has zero total member flux %v", e.Group, e.Members)
}

// Is makes every EmptyGroupError match ErrEmptyGroup.
func (e *EmptyGroupError) Is(target error) bool { return target == ErrEmptyGroup }

// Scenario is one labeled case.
type Scenario struct {
	Label       string
	Description string
	Case        casedata.Accessor
}

// Options configures Aggregate.
//   - Orient: canonicalize link orientation across scenarios (default off).
type Options struct {
	Orient bool
}

// DefaultOptions returns the zero configuration (no orientation).
func DefaultOptions() Options { return Options{} }

// NodeSeries holds one slot per scenario.
type NodeSeries struct {
	Flux       []float64
	GrossProd  []float64
	GrossCons  []float64
	NetProd    []float64
	FluxByProc []map[string]float64
}

// Node is one material of the merged graph.
type Node struct {
	ID         string
	Flux       float64
	GrossProd  float64
	GrossCons  float64
	NetProd    float64
	FluxByProc map[string]float64

	Demand           *float64 // nil when the material has no demand
	Supply           *float64 // nil when the material has no supply
	UnconstrainedRaw bool

	Series *NodeSeries // nil for a single scenario
}

// LinkSeries holds one slot per scenario.
type LinkSeries struct {
	Flux       []float64
	FluxByProc []map[string]float64
}

// Link is one (consumer, producer) pair of the merged graph.
type Link struct {
	Consumer   string
	Producer   string
	Flux       float64
	FluxByProc map[string]float64

	Series *LinkSeries // nil for a single scenario
}

// Key returns the link's (consumer, producer) pair.
func (l Link) Key() network.EdgeKey {
	return network.EdgeKey{Consumer: l.Consumer, Producer: l.Producer}
}

// Result is the merged graph data.
type Result struct {
	Nodes     []Node
	Links     []Link
	Labels    []string
	Descs     []string
	Oriented  bool
	Materials []network.Material // metadata of the first scenario
	Processes []network.Process
}

// Multi reports whether the result carries per-scenario series.
func (r *Result) Multi() bool { return len(r.Labels) > 1 }

// Node returns the node with the given id.
func (r *Result) Node(id string) (Node, bool) {
	for _, n := range r.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return Node{}, false
}

// Link returns the link for (consumer, producer).
func (r *Result) Link(consumer, producer string) (Link, bool) {
	for _, l := range r.Links {
		if l.Consumer == consumer && l.Producer == producer {
			return l, true
		}
	}

	return Link{}, false
}
