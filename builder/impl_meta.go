// SPDX-License-Identifier: MIT
// Package: builder
//
// impl_meta.go - graph-level attributes.

package builder

import (
	"github.com/yosukefk/chemnetrowk-vis/core"
	"github.com/yosukefk/chemnetrowk-vis/series"
)

// Metadata sets title, run id, scenario labels (multi-scenario only), the
// oriented flag (whenever dual links were folded) and material/process
// descriptions.
func Metadata(res *series.Result) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if res == nil {
			return builderErrorf(MethodMetadata, "%w", ErrNilResult)
		}
		attrs := map[string]interface{}{GraphRunID: cfg.runID}
		if cfg.title != "" {
			attrs[GraphTitle] = cfg.title
		}
		if res.Multi() {
			attrs[GraphSeriesLabels] = res.Labels
			attrs[GraphSeriesDescs] = res.Descs
		}
		if res.Oriented {
			attrs[GraphOriented] = true
		}
		materials, processes := cfg.materials, cfg.processes
		if materials == nil {
			materials = res.Materials
		}
		if processes == nil {
			processes = res.Processes
		}
		if len(materials) > 0 {
			attrs[GraphMaterialDesc] = materials
		}
		if len(processes) > 0 {
			attrs[GraphProcessDesc] = processes
		}
		for k, v := range attrs {
			if err := g.SetAttr(k, v); err != nil {
				return builderErrorf(MethodMetadata, "attr %q: %w", k, err)
			}
		}

		return nil
	}
}
