// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_links.go - one weighted edge per link, consumer → producer.

package builder

import (
	"github.com/yosukefk/chemnetrowk-vis/core"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

// Links adds every link of res as a consumer→producer edge weighted by
// its summarized flow.
// Complexity: O(E).
func Links(res *series.Result) Constructor {
	return func(g *core.Graph, _ builderConfig) error {
		if res == nil {
			return builderErrorf(MethodLinks, "%w", ErrNilResult)
		}
		for _, l := range res.Links {
			if _, err := g.AddEdge(l.Consumer, l.Producer, l.Flux); err != nil {
				return builderErrorf(MethodLinks, "%s→%s: %w", l.Consumer, l.Producer, err)
			}
			attrs := map[string]interface{}{
				AttrFlux:       l.Flux,
				AttrFluxByProc: l.FluxByProc,
			}
			if s := l.Series; s != nil {
				attrs[AttrSeriesFlux] = s.Flux
				attrs[AttrSeriesFluxByProc] = s.FluxByProc
			}
			for k, v := range attrs {
				if err := g.SetEdgeAttr(l.Consumer, l.Producer, k, v); err != nil {
					return builderErrorf(MethodLinks, "%s→%s attr %q: %w", l.Consumer, l.Producer, k, err)
				}
			}
		}

		return nil
	}
}
