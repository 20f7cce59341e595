// SPDX-License-Identifier: MIT

// Package chemnetvis turns a solved chemical-sector production network into
// a directed material-to-material flow graph, and merges several solved
// scenarios into one graph with per-scenario series for comparison.
//
// A case document lists signed throughput per (material, process): negative
// values are consumption, positive values production. Every process splits
// its consumption over its products in proportion to their output, which
// yields material edges whose weights are the allocated flow.
//
// Packages, leaf first:
//
//	core/       thread-safe directed graph with vertex, edge and graph attributes
//	network/    tables: throughput records, quantities, material edges
//	condense/   many-to-one material remapping applied before any derived table
//	flow/       gross and net production, flux, edge decomposition, mass balance
//	casedata/   case documents and the memoized per-scenario Accessor
//	series/     multi-scenario aggregation, orientation, group demand
//	builder/    core.Graph assembly from an aggregated result
//	converters/ node-link JSON, msgpack snapshots, gonum PageRank, xlsx workbook
//	pipeline/   concurrent load, aggregate and build
//	config/, logger/, metrics/, server/, cmd/chemnetvis
//
// Quick start:
//
//	res, err := pipeline.Run(ctx, pipeline.Request{
//		Sources: []pipeline.Source{{Label: "base", Path: "base.json"}},
//	})
//	if err != nil { ... }
//	converters.WriteJSON(os.Stdout, res.Graph, true)
package chemnetvis
