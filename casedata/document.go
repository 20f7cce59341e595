// SPDX-License-Identifier: MIT
// File: document.go
// Role: solver output document (JSON) and its consistency checks.

package casedata

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/yosukefk/chemnetrowk-vis/flow"
	"github.com/yosukefk/chemnetrowk-vis/network"
)

// Document is one scenario as written by the solver step.
// Throughput may be omitted, in which case it is derived as A·X.
type Document struct {
	Materials        []string                      `json:"i" validate:"required,dive,required"`
	Processes        []string                      `json:"j" validate:"dive,required"`
	Throughput       map[string]map[string]float64 `json:"throughput,omitempty"`
	Demand           map[string]float64            `json:"demand,omitempty"`
	Supply           map[string]float64            `json:"supply,omitempty"`
	GrossProd        map[string]float64            `json:"gross_prod,omitempty"`
	GrossCons        map[string]float64            `json:"gross_cons,omitempty"`
	NetProd          map[string]float64            `json:"net_prod,omitempty"`
	UnconstrainedRaw []string                      `json:"unconstrained_raw,omitempty"`
	A                map[string]map[string]float64 `json:"a,omitempty"`
	X                map[string]float64            `json:"x,omitempty"`
	ProductGroups    map[string][]string           `json:"pgrp_i,omitempty" validate:"dive,keys,required,endkeys,dive,required"`
	GroupDemand      map[string]float64            `json:"pgrp_demand,omitempty"`
	MaterialDefs     []network.Material            `json:"material_defs,omitempty" validate:"dive"`
	ProcessDefs      []network.Process             `json:"process_defs,omitempty" validate:"dive"`
}

var validate = validator.New()

// Decode reads one JSON Document from r.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("casedata: decode: %w", err)
	}

	return &doc, nil
}

// LoadFile opens path and decodes it.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("casedata: %w", err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Records returns the throughput table sorted by material, then process.
// Without an explicit throughput it is derived from A and X; zero
// products are dropped.
// Complexity: O(n log n).
func (d *Document) Records() network.Throughput {
	var out network.Throughput
	if d.Throughput != nil {
		for mat, row := range d.Throughput {
			for proc, v := range row {
				out = append(out, network.Record{Material: mat, Process: proc, Value: v})
			}
		}
	} else {
		for mat, row := range d.A {
			for proc, coef := range row {
				if v := coef * d.X[proc]; v != 0 {
					out = append(out, network.Record{Material: mat, Process: proc, Value: v})
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Material != out[j].Material {
			return out[i].Material < out[j].Material
		}
		return out[i].Process < out[j].Process
	})

	return out
}

// Validate checks the document structure and that every table only
// references declared materials and processes.
//
// Errors: validator.ValidationErrors for structural problems,
// *network.ConsistencyError (errors.Is ErrDataConsistency) for the first
// undeclared reference, flow.ErrNonFinite for NaN/Inf values.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("casedata: %w", err)
	}

	mats := set(d.Materials)
	procs := set(d.Processes)
	check := func(table, kind string, known map[string]bool, ids []string) error {
		for _, id := range ids {
			if !known[id] {
				return &network.ConsistencyError{Table: table, Kind: kind, ID: id}
			}
		}
		return nil
	}

	for _, r := range d.Records() {
		if err := check("throughput", "material", mats, []string{r.Material}); err != nil {
			return err
		}
		if err := check("throughput", "process", procs, []string{r.Process}); err != nil {
			return err
		}
		if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
			return fmt.Errorf("casedata: %s/%s: %w", r.Material, r.Process, flow.ErrNonFinite)
		}
	}
	tables := []struct {
		name string
		ids  []string
	}{
		{"demand", sortedKeys(d.Demand)},
		{"supply", sortedKeys(d.Supply)},
		{"gross_prod", sortedKeys(d.GrossProd)},
		{"gross_cons", sortedKeys(d.GrossCons)},
		{"net_prod", sortedKeys(d.NetProd)},
		{"unconstrained_raw", d.UnconstrainedRaw},
	}
	for _, tb := range tables {
		if err := check(tb.name, "material", mats, tb.ids); err != nil {
			return err
		}
	}
	for _, grp := range sortedKeys(d.ProductGroups) {
		if err := check("pgrp_i", "material", mats, d.ProductGroups[grp]); err != nil {
			return err
		}
	}
	if err := check("pgrp_demand", "group", set(sortedKeys(d.ProductGroups)), sortedKeys(d.GroupDemand)); err != nil {
		return err
	}

	return nil
}

func set(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}

	return out
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}
