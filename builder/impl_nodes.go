// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_nodes.go - one vertex per material with summary, optional and
// series attributes.

package builder

import (
	"github.com/yosukefk/chemnetrowk-vis/core"
	"github.com/yosukefk/chemnetrowk-vis/network"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

// Nodes adds every node of res in order.
// Complexity: O(V · A) for A attributes per vertex.
func Nodes(res *series.Result) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if res == nil {
			return builderErrorf(MethodNodes, "%w", ErrNilResult)
		}
		defs := cfg.materials
		if defs == nil {
			defs = res.Materials
		}
		byID := make(map[string]network.Material, len(defs))
		for _, d := range defs {
			byID[d.ID] = d
		}

		for _, n := range res.Nodes {
			if err := g.AddVertex(n.ID); err != nil {
				return builderErrorf(MethodNodes, "vertex %q: %w", n.ID, err)
			}
			attrs := map[string]interface{}{
				AttrFlux:       n.Flux,
				AttrGrossProd:  n.GrossProd,
				AttrGrossCons:  n.GrossCons,
				AttrNetProd:    n.NetProd,
				AttrFluxByProc: n.FluxByProc,
			}
			if n.Demand != nil {
				attrs[AttrDemand] = *n.Demand
			}
			if n.Supply != nil {
				attrs[AttrSupply] = *n.Supply
			}
			if n.UnconstrainedRaw {
				attrs[AttrUnconstrainedRaw] = true
			}
			if d, ok := byID[n.ID]; ok {
				if d.Name != "" {
					attrs[AttrName] = d.Name
				}
				if d.Category != "" {
					attrs[AttrCategory] = d.Category
				}
			}
			if s := n.Series; s != nil {
				attrs[AttrSeriesFlux] = s.Flux
				attrs[AttrSeriesGrossProd] = s.GrossProd
				attrs[AttrSeriesGrossCons] = s.GrossCons
				attrs[AttrSeriesNetProd] = s.NetProd
				attrs[AttrSeriesFluxByProc] = s.FluxByProc
			}
			for k, v := range attrs {
				if err := g.SetVertexAttr(n.ID, k, v); err != nil {
					return builderErrorf(MethodNodes, "vertex %q attr %q: %w", n.ID, k, err)
				}
			}
		}

		return nil
	}
}
