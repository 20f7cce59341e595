// SPDX-License-Identifier: MIT
// File: gonum.go
// Role: export to gonum/graph and PageRank ranking of materials.

package converters

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/yosukefk/chemnetrowk-vis/builder"
	"github.com/yosukefk/chemnetrowk-vis/core"
)

// Default PageRank parameters.
const (
	DefaultDamping = 0.85
	DefaultRankTol = 1e-6
)

// ToGonum copies g into a weighted directed gonum graph. Vertex i of
// g.Vertices() becomes node id i; ids maps back to vertex names. Loops
// and zero-weight edges are skipped.
// Complexity: O(V + E).
func ToGonum(g *core.Graph) (dg *simple.WeightedDirectedGraph, ids []string) {
	dg = simple.NewWeightedDirectedGraph(0, math.Inf(1))
	ids = g.Vertices()
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges() {
		w := math.Abs(e.Weight)
		if w == 0 || e.From == e.To {
			continue
		}
		dg.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(index[e.From]),
			T: simple.Node(index[e.To]),
			W: w,
		})
	}

	return dg, ids
}

// PageRank returns the edge-weighted PageRank of every vertex of g.
func PageRank(g *core.Graph, damping, tol float64) map[string]float64 {
	dg, ids := ToGonum(g)
	out := make(map[string]float64, len(ids))
	if len(ids) == 0 {
		return out
	}
	for id, score := range network.PageRank(dg, damping, tol) {
		out[ids[id]] = score
	}

	return out
}

// AnnotateRank stores PageRank scores under the "rank" vertex attribute.
func AnnotateRank(g *core.Graph, damping, tol float64) error {
	for id, score := range PageRank(g, damping, tol) {
		if err := g.SetVertexAttr(id, builder.AttrRank, score); err != nil {
			return err
		}
	}

	return nil
}
