// SPDX-License-Identifier: MIT
// File: aggregate.go
// Role: union of scenarios, summaries and series attachment.
// Determinism:
//   - Node and link order is first-seen over scenarios as supplied.
//   - Per-process maps are keyed by process id (encoders sort keys).

package series

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// scenarioEdges is one scenario's link tables after orientation.
type scenarioEdges struct {
	edges  *network.Edges
	byProc map[network.EdgeKey]map[string]float64
}

// Aggregate merges the scenarios into one Result.
//
// Steps:
//  1. Validate labels (ErrNoScenarios, ErrEmptyLabel, ErrDuplicateLabel).
//  2. Fetch each scenario's decomposition; optionally fold dual links and
//     relabel pairs to the first-seen orientation.
//  3. Build the node union from flux tables and fill node series.
//  4. Build the link union and fill link series.
//  5. Place product-group demand; attach demand, supply and raw flags
//     from the first scenario.
//
// Complexity: O(K·(V + E + B)) for K scenarios.
func Aggregate(scenarios []Scenario, opts Options) (*Result, error) {
	if len(scenarios) == 0 {
		return nil, ErrNoScenarios
	}
	res := &Result{Oriented: opts.Orient}
	seen := make(map[string]bool, len(scenarios))
	for _, s := range scenarios {
		switch {
		case s.Label == "":
			return nil, ErrEmptyLabel
		case seen[s.Label]:
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, s.Label)
		}
		seen[s.Label] = true
		res.Labels = append(res.Labels, s.Label)
		res.Descs = append(res.Descs, s.Description)
	}

	perScenario, err := collectEdges(scenarios, opts)
	if err != nil {
		return nil, err
	}

	res.Nodes = buildNodes(scenarios)
	res.Links = buildLinks(perScenario)

	flux := network.NewQuantities()
	for _, n := range res.Nodes {
		flux.Set(n.ID, n.Flux)
	}
	demand, err := groupDemand(scenarios, flux)
	if err != nil {
		return nil, err
	}
	first := scenarios[0].Case
	supply := first.Supply()
	raw := make(map[string]bool)
	for _, id := range first.UnconstrainedRaw() {
		raw[id] = true
	}
	for i := range res.Nodes {
		n := &res.Nodes[i]
		if v, ok := demand.Get(n.ID); ok {
			n.Demand = &v
		}
		if v, ok := supply.Get(n.ID); ok {
			n.Supply = &v
		}
		n.UnconstrainedRaw = raw[n.ID]
	}
	res.Materials = first.MaterialDefs()
	res.Processes = first.ProcessDefs()

	if !res.Multi() {
		for i := range res.Nodes {
			res.Nodes[i].Series = nil
		}
		for i := range res.Links {
			res.Links[i].Series = nil
		}
	}

	return res, nil
}

func collectEdges(scenarios []Scenario, opts Options) ([]scenarioEdges, error) {
	type tables struct {
		e *network.Edges
		p *network.ProcessEdges
	}
	raw := make([]tables, len(scenarios))
	for i, s := range scenarios {
		d, err := s.Case.Decomposition()
		if err != nil {
			return nil, fmt.Errorf("series: scenario %q: %w", s.Label, err)
		}
		raw[i] = tables{e: d.Edges, p: d.ByProcess}
	}

	if opts.Orient {
		o := orientation{}
		for i := range raw {
			raw[i].e, raw[i].p = foldDual(raw[i].e, raw[i].p)
			o.learn(raw[i].e)
		}
		for i := range raw {
			raw[i].e, raw[i].p = o.apply(raw[i].e, raw[i].p)
		}
	}

	out := make([]scenarioEdges, len(raw))
	for i, t := range raw {
		out[i] = scenarioEdges{edges: t.e, byProc: network.BreakdownByPair(t.p)}
	}

	return out, nil
}

func buildNodes(scenarios []Scenario) []Node {
	k := len(scenarios)
	var order []string
	idx := make(map[string]int)
	for _, s := range scenarios {
		s.Case.Flux().Range(func(id string, _ float64) {
			if _, ok := idx[id]; !ok {
				idx[id] = len(order)
				order = append(order, id)
			}
		})
	}

	nodes := make([]Node, len(order))
	for i, id := range order {
		nodes[i] = Node{ID: id, Series: &NodeSeries{
			Flux:       make([]float64, k),
			GrossProd:  make([]float64, k),
			GrossCons:  make([]float64, k),
			NetProd:    make([]float64, k),
			FluxByProc: make([]map[string]float64, k),
		}}
	}

	for j, s := range scenarios {
		c := s.Case
		fill := func(dst func(*NodeSeries) []float64) func(string, float64) {
			return func(id string, v float64) { dst(nodes[idx[id]].Series)[j] = v }
		}
		c.Flux().Range(fill(func(ns *NodeSeries) []float64 { return ns.Flux }))
		c.GrossProduction().Range(fill(func(ns *NodeSeries) []float64 { return ns.GrossProd }))
		c.GrossConsumption().Range(fill(func(ns *NodeSeries) []float64 { return ns.GrossCons }))
		c.NetProduction().Range(fill(func(ns *NodeSeries) []float64 { return ns.NetProd }))

		byProc := make(map[string]map[string]float64)
		for _, r := range c.FluxByProcess() {
			if byProc[r.Material] == nil {
				byProc[r.Material] = make(map[string]float64)
			}
			byProc[r.Material][r.Process] += r.Value
		}
		for id, i := range idx {
			nodes[i].Series.FluxByProc[j] = byProc[id]
		}
	}

	for i := range nodes {
		n, ns := &nodes[i], nodes[i].Series
		n.Flux = floats.Max(ns.Flux)
		n.GrossProd = floats.Max(ns.GrossProd)
		n.GrossCons = floats.Max(ns.GrossCons)
		n.NetProd = extreme(ns.NetProd)
		n.FluxByProc = summarizeByProc(ns.FluxByProc)
	}

	return nodes
}

func buildLinks(perScenario []scenarioEdges) []Link {
	k := len(perScenario)
	var links []Link
	idx := make(map[network.EdgeKey]int)
	for _, s := range perScenario {
		s.edges.Range(func(e network.EdgeKey, _ float64) {
			if _, ok := idx[e]; ok {
				return
			}
			idx[e] = len(links)
			links = append(links, Link{
				Consumer: e.Consumer,
				Producer: e.Producer,
				Series: &LinkSeries{
					Flux:       make([]float64, k),
					FluxByProc: make([]map[string]float64, k),
				},
			})
		})
	}

	for j, s := range perScenario {
		s.edges.Range(func(e network.EdgeKey, v float64) { links[idx[e]].Series.Flux[j] = v })
		for e, i := range idx {
			links[i].Series.FluxByProc[j] = s.byProc[e]
		}
	}

	for i := range links {
		ls := links[i].Series
		links[i].Flux = floats.Max(ls.Flux)
		links[i].FluxByProc = summarizeByProc(ls.FluxByProc)
	}

	return links
}

// summarizeByProc zero-fills every scenario's map to the union of
// processes and returns the per-process signed extreme.
func summarizeByProc(series []map[string]float64) map[string]float64 {
	procs := make(map[string]bool)
	for _, m := range series {
		for p := range m {
			procs[p] = true
		}
	}
	for j, m := range series {
		filled := make(map[string]float64, len(procs))
		for p := range procs {
			filled[p] = m[p]
		}
		series[j] = filled
	}

	out := make(map[string]float64, len(procs))
	vals := make([]float64, len(series))
	for p := range procs {
		for j, m := range series {
			vals[j] = m[p]
		}
		out[p] = extreme(vals)
	}

	return out
}

// extreme returns the value of largest magnitude, keeping its sign. Ties
// resolve to the minimum.
func extreme(vals []float64) float64 {
	mx, mn := floats.Max(vals), floats.Min(vals)
	if math.Abs(mx) > math.Abs(mn) {
		return mx
	}

	return mn
}
