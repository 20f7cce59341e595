// Package casedata exposes the canonical tables of one solved scenario.
//
// A Document is the solver's JSON output for one case (materials "i",
// processes "j", throughput, demand, supply, product groups, ...).
// New validates it against its own declared material and process sets,
// then returns a Case whose derived tables are computed on first access
// and cached for the lifetime of the Case (one sync.Once per table).
//
// Options applied by New, in this order, before any derived table:
//
//  1. unit conversion: throughput, demand, supply and group demand are
//     multiplied by the scalar (default 1);
//  2. ignore list: listed materials are dropped from throughput, demand
//     and supply;
//  3. condensation: explicit groups merged with the case's own product
//     groups (when enabled, explicit wins) remap every material table.
//
// Requesting product-group condensation on a document without product
// groups fails with ErrConfiguration. References to undeclared
// identifiers fail with a *network.ConsistencyError.
package casedata
