// Package converters moves a core.Graph in and out of external formats:
//
//   - node-link JSON (the networkx layout consumed by the d3 viewer),
//   - compact snapshots (JSON or msgpack, optionally gzip/zstd compressed),
//   - gonum/graph (weighted directed graph) and PageRank node ranking,
//   - an excelize workbook with nodes, links and per-process link sheets.
//
// Attribute keys are the ones declared by the builder package; converters
// copy them verbatim and never reinterpret values except where a format
// needs a number (edge weight, ranking).
package converters
