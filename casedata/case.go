// SPDX-License-Identifier: MIT
// File: case.go
// Role: Accessor contract and the memoized Case implementation.
// Concurrency:
//   - Every derived table is guarded by its own sync.Once; a Case may be
//     shared between goroutines once New has returned.
//   - Returned tables are shared; callers must treat them as read-only.

package casedata

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/yosukefk/chemnetrowk-vis/condense"
	"github.com/yosukefk/chemnetrowk-vis/flow"
	"github.com/yosukefk/chemnetrowk-vis/network"
)

// Accessor exposes the canonical tables of one scenario. All material
// identifiers are already condensed and filtered.
type Accessor interface {
	Materials() []string
	Processes() []string
	MaterialDefs() []network.Material
	ProcessDefs() []network.Process

	Throughput() network.Throughput
	Demand() *network.Quantities
	Supply() *network.Quantities
	UnconstrainedRaw() []string
	ProductGroups() []network.ProductGroup
	GroupsCondensed() bool

	GrossProduction() *network.Quantities
	GrossConsumption() *network.Quantities
	NetProduction() *network.Quantities
	Flux() *network.Quantities
	FluxByProcess() network.Throughput
	Decomposition() (*flow.Decomposition, error)
}

// lazy memoizes one table.
type lazy[T any] struct {
	once sync.Once
	v    T
}

func (l *lazy[T]) get(fn func() T) T {
	l.once.Do(func() { l.v = fn() })
	return l.v
}

type decomposed struct {
	d   *flow.Decomposition
	err error
}

// Case is the Accessor implementation backed by a Document.
type Case struct {
	doc     *Document
	cfg     caseConfig
	mapping *condense.Mapping

	thru      lazy[network.Throughput]
	demand    lazy[*network.Quantities]
	supply    lazy[*network.Quantities]
	raw       lazy[[]string]
	groups    lazy[[]network.ProductGroup]
	prod      lazy[*network.Quantities]
	cons      lazy[*network.Quantities]
	net       lazy[*network.Quantities]
	flux      lazy[*network.Quantities]
	fluxProc  lazy[network.Throughput]
	decompose lazy[decomposed]
}

var _ Accessor = (*Case)(nil)

// New validates doc and prepares a Case. No derived table is computed yet.
//
// Errors: ErrConfiguration, *network.ConsistencyError, condense errors,
// validation errors from Document.Validate.
func New(doc *Document, opts ...Option) (*Case, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrConfiguration)
	}
	cfg := newCaseConfig(opts...)
	if cfg.condensePgrp && len(doc.ProductGroups) == 0 {
		return nil, fmt.Errorf("%w: product-group condensation requested but the case has no product groups", ErrConfiguration)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	var derived map[string][]string
	if cfg.condensePgrp {
		derived = doc.ProductGroups
	}
	mapping, err := condense.Merge(cfg.condense, derived)
	if err != nil {
		return nil, err
	}

	return &Case{doc: doc, cfg: cfg, mapping: mapping}, nil
}

// Mapping returns the condensation in effect.
func (c *Case) Mapping() *condense.Mapping { return c.mapping }

// GroupsCondensed reports whether product groups were condensed onto their
// group ids.
func (c *Case) GroupsCondensed() bool { return c.cfg.condensePgrp }

// Materials returns the declared materials after condensation, without
// ignored ones, in declaration order.
func (c *Case) Materials() []string {
	return c.keep(c.mapping.IDs(c.keep(c.doc.Materials)))
}

// Processes returns the declared processes.
func (c *Case) Processes() []string {
	return append([]string(nil), c.doc.Processes...)
}

// MaterialDefs returns the material metadata carried by the document.
func (c *Case) MaterialDefs() []network.Material {
	return append([]network.Material(nil), c.doc.MaterialDefs...)
}

// ProcessDefs returns the process metadata carried by the document.
func (c *Case) ProcessDefs() []network.Process {
	return append([]network.Process(nil), c.doc.ProcessDefs...)
}

// Throughput returns the scaled, filtered and condensed throughput.
func (c *Case) Throughput() network.Throughput {
	return c.thru.get(func() network.Throughput {
		t := c.doc.Records().Filter(func(r network.Record) bool { return !c.cfg.ignored[r.Material] })
		for i := range t {
			t[i].Value *= c.cfg.unit
		}
		t = c.mapping.Throughput(t).Filter(func(r network.Record) bool { return !c.cfg.ignored[r.Material] })
		c.cfg.logger.Debug("throughput ready", slog.Int("records", len(t)))
		return t
	})
}

// Demand returns the scaled, filtered and condensed demand table.
func (c *Case) Demand() *network.Quantities {
	return c.demand.get(func() *network.Quantities { return c.quantities(c.doc.Demand) })
}

// Supply returns the scaled, filtered and condensed supply table.
func (c *Case) Supply() *network.Quantities {
	return c.supply.get(func() *network.Quantities { return c.quantities(c.doc.Supply) })
}

// UnconstrainedRaw returns the condensed unconstrained raw materials.
func (c *Case) UnconstrainedRaw() []string {
	return c.raw.get(func() []string { return c.keep(c.mapping.IDs(c.keep(c.doc.UnconstrainedRaw))) })
}

// ProductGroups returns the document's product groups, sorted by id, with
// scaled demand. Members are resolved through the condensation mapping,
// deduplicated and filtered like every other table, so a member claimed by
// an explicit group appears under that group's id.
func (c *Case) ProductGroups() []network.ProductGroup {
	return c.groups.get(func() []network.ProductGroup {
		var out []network.ProductGroup
		for _, id := range sortedKeys(c.doc.ProductGroups) {
			out = append(out, network.ProductGroup{
				ID:      id,
				Members: c.keep(c.mapping.IDs(c.keep(c.doc.ProductGroups[id]))),
				Demand:  c.doc.GroupDemand[id] * c.cfg.unit,
			})
		}
		return out
	})
}

// GrossProduction derives gross production from Throughput.
func (c *Case) GrossProduction() *network.Quantities {
	return c.prod.get(func() *network.Quantities { return flow.GrossProduction(c.Throughput()) })
}

// GrossConsumption derives gross consumption (magnitude) from Throughput.
func (c *Case) GrossConsumption() *network.Quantities {
	return c.cons.get(func() *network.Quantities { return flow.GrossConsumption(c.Throughput()) })
}

// NetProduction derives net production from the gross tables.
func (c *Case) NetProduction() *network.Quantities {
	return c.net.get(func() *network.Quantities {
		return flow.NetProduction(c.GrossProduction(), c.GrossConsumption())
	})
}

// Flux derives per-material flux.
func (c *Case) Flux() *network.Quantities {
	return c.flux.get(func() *network.Quantities {
		return flow.Flux(c.GrossProduction(), c.GrossConsumption())
	})
}

// FluxByProcess derives |throughput| per (material, process).
func (c *Case) FluxByProcess() network.Throughput {
	return c.fluxProc.get(func() network.Throughput { return flow.FluxByProcess(c.Throughput()) })
}

// Decomposition computes the edge tables once. Mass-balance warnings are
// logged at WARN and kept on the result.
func (c *Case) Decomposition() (*flow.Decomposition, error) {
	r := c.decompose.get(func() decomposed {
		d, err := flow.Decompose(c.Throughput(), flow.Options{Tolerance: c.cfg.tolerance})
		if err != nil {
			return decomposed{err: fmt.Errorf("casedata: %w", err)}
		}
		for _, w := range d.Warnings {
			c.cfg.logger.Warn("mass balance residual",
				slog.String("process", w.Process),
				slog.Float64("residual", w.Residual),
				slog.Float64("relative", w.Relative))
		}
		c.cfg.logger.Debug("edges ready",
			slog.Int("edges", d.Edges.Len()),
			slog.Int("edges_byproc", d.ByProcess.Len()))
		return decomposed{d: d}
	})

	return r.d, r.err
}

// Force computes every table. It is what a worker calls so that the
// aggregation stage only reads cached values.
func (c *Case) Force() error {
	c.Demand()
	c.Supply()
	c.UnconstrainedRaw()
	c.ProductGroups()
	c.NetProduction()
	c.Flux()
	c.FluxByProcess()
	_, err := c.Decomposition()

	return err
}

func (c *Case) quantities(m map[string]float64) *network.Quantities {
	q := network.NewQuantities()
	for _, id := range sortedKeys(m) {
		if !c.cfg.ignored[id] {
			q.Add(id, m[id]*c.cfg.unit)
		}
	}
	out := network.NewQuantities()
	c.mapping.Quantities(q).Range(func(id string, v float64) {
		if !c.cfg.ignored[id] {
			out.Set(id, v)
		}
	})

	return out
}

func (c *Case) keep(ids []string) []string {
	var out []string
	for _, id := range ids {
		if !c.cfg.ignored[id] {
			out = append(out, id)
		}
	}

	return out
}
