// SPDX-License-Identifier: MIT
// Package: builder
//
// constants.go - attribute keys shared with the converters package.

package builder

// Node attribute keys.
const (
	AttrFlux             = "flux"
	AttrGrossProd        = "gross_prod"
	AttrGrossCons        = "gross_cons"
	AttrNetProd          = "net_prod"
	AttrFluxByProc       = "flux_byproc"
	AttrDemand           = "demand"
	AttrSupply           = "supply"
	AttrUnconstrainedRaw = "unconstrained_raw"
	AttrName             = "name"
	AttrCategory         = "category"
	AttrRank             = "rank"

	AttrSeriesFlux       = "series_flux"
	AttrSeriesFluxByProc = "series_flux_byproc"
	AttrSeriesGrossProd  = "series_gross_prod"
	AttrSeriesGrossCons  = "series_gross_cons"
	AttrSeriesNetProd    = "series_net_prod"
)

// Graph attribute keys.
const (
	GraphTitle        = "title"
	GraphSeriesLabels = "series_labels"
	GraphSeriesDescs  = "series_descs"
	GraphOriented     = "oriented"
	GraphMaterialDesc = "material_desc"
	GraphProcessDesc  = "process_desc"
	GraphRunID        = "run_id"
)

// Constructor names used as error context.
const (
	MethodNodes    = "Nodes"
	MethodLinks    = "Links"
	MethodMetadata = "Metadata"
)
