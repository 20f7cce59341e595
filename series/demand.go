// SPDX-License-Identifier: MIT
// File: demand.go
// Role: product-group demand placement.

package series

import "github.com/yosukefk/chemnetrowk-vis/network"

// Redistribute splits each group's demand over its members in proportion
// to their flux:
//
//	member_demand = member_flux / Σ member_flux · group_demand
//
// Members must use the same (condensed) ids as flux, as
// Accessor.ProductGroups returns them. Members absent from flux count as
// zero. Groups with zero demand are skipped. A group with demand whose
// members carry no flux at all fails with *EmptyGroupError.
// Complexity: O(Σ |members|).
func Redistribute(groups []network.ProductGroup, flux *network.Quantities) (*network.Quantities, error) {
	out := network.NewQuantities()
	for _, g := range groups {
		if g.Demand == 0 {
			continue
		}
		total := 0.0
		for _, m := range g.Members {
			total += flux.Value(m)
		}
		if total == 0 {
			return nil, &EmptyGroupError{Group: g.ID, Members: append([]string(nil), g.Members...)}
		}
		for _, m := range g.Members {
			if f := flux.Value(m); f != 0 {
				out.Add(m, f/total*g.Demand)
			}
		}
	}

	return out, nil
}

// groupDemand returns the demand table of the merged graph: the first
// scenario's demand plus its product-group demand, placed according to
// how the scenarios were condensed.
func groupDemand(scenarios []Scenario, flux *network.Quantities) (*network.Quantities, error) {
	first := scenarios[0].Case
	demand := first.Demand().Clone()
	groups := first.ProductGroups()

	condensed := 0
	for _, s := range scenarios {
		if s.Case.GroupsCondensed() {
			condensed++
		}
	}

	switch {
	case condensed == len(scenarios):
		for _, g := range groups {
			demand.Add(g.ID, g.Demand)
		}
	case condensed > 0:
		return nil, ErrMixedCondensation
	default:
		extra, err := Redistribute(groups, flux)
		if err != nil {
			return nil, err
		}
		extra.Range(demand.Add)
	}

	return demand, nil
}
