// Package builder assembles the output graph of a merged scenario run.
//
// The graph is a directed core.Graph: one vertex per material, one edge
// per (consumer, producer) link (source = consumer, target = producer),
// edge weight = summarized link flow. Everything else travels as
// attributes under the keys declared in constants.go, which the
// converters package serializes unchanged.
//
// Composition follows the functional style:
//
//	g, err := builder.BuildGraph(
//	    []core.GraphOption{core.WithDirected(true)},
//	    []builder.BuilderOption{builder.WithTitle("olefins")},
//	    builder.Nodes(res), builder.Links(res), builder.Metadata(res),
//	)
//
// FromResult is the shorthand for exactly that sequence.
//
// Guarantees:
//
//   - Vertices and edges are added in the Result's order.
//   - Series attributes are attached only to multi-scenario results.
//   - Optional attributes (demand, supply, name, category) are omitted
//     rather than zero-filled when unknown.
package builder
