// Package condense merges several raw material (or product-group member)
// identifiers into one aggregate "species" before any derived table is
// computed.
//
// A Mapping is built once from group → members definitions, validated
// (no empty identifiers, no member claimed by two groups) and is
// immutable afterwards. Applying it to throughput, demand, supply and
// identifier lists goes through the same Resolve function, so every
// table of a case sees the same remapping.
//
// A nil *Mapping is valid and behaves as the identity mapping.
package condense
