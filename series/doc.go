// Package series merges K independently decomposed scenarios into one
// node/link set with aligned per-scenario series.
//
// # Union and summaries
//
// Nodes are the union of the materials carrying flux in any scenario and
// links the union of (consumer, producer) pairs, both in first-seen order
// over the scenarios as supplied. Summaries use a plain maximum for the
// non-negative fields (flux, gross production, gross consumption, link
// flow) and the signed extreme (largest magnitude, sign kept) for net
// production and per-process breakdowns. Series hold one slot per
// scenario; a material or pair absent from a scenario contributes 0.
//
// # Orientation
//
// With Options.Orient each scenario first folds dual links (A,B)/(B,A)
// into the larger orientation, the smaller one's per-process values being
// negated. The first orientation seen across the scenarios is then
// canonical and later scenarios have their pairs relabeled to it with
// magnitudes unchanged. Scenario tables are copied, never modified.
//
// # Product-group demand
//
// When every scenario condensed its product groups, group demand is added
// to the demand of the condensed id. When none did, it is split across
// the members by their share of flux (Redistribute). Mixing both is an
// error. Demand, supply and unconstrained-raw flags come from the first
// scenario.
package series
