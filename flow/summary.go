// SPDX-License-Identifier: MIT
// File: summary.go
// Role: per-material gross/net production and flux tables.

package flow

import (
	"math"

	"github.com/yosukefk/chemnetrowk-vis/network"
)

// GrossProduction sums the positive throughput of each material.
// Materials that are never produced are absent.
func GrossProduction(t network.Throughput) *network.Quantities {
	out := network.NewQuantities()
	for _, r := range t {
		if r.Produced() {
			out.Add(r.Material, r.Value)
		}
	}

	return out
}

// GrossConsumption sums the negative throughput of each material and
// returns the magnitude. Materials that are never consumed are absent.
func GrossConsumption(t network.Throughput) *network.Quantities {
	out := network.NewQuantities()
	for _, r := range t {
		if r.Consumed() {
			out.Add(r.Material, -r.Value)
		}
	}

	return out
}

// NetProduction returns gross production minus gross consumption for every
// material present in either table (production keys first).
func NetProduction(prod, cons *network.Quantities) *network.Quantities {
	out := network.NewQuantities()
	prod.Range(func(id string, v float64) { out.Add(id, v) })
	cons.Range(func(id string, v float64) { out.Add(id, -v) })

	return out
}

// Flux returns max(|production|, |consumption|) per material.
// Concatenates both tables and reduces by absolute maximum; consumption
// keys come first.
func Flux(prod, cons *network.Quantities) *network.Quantities {
	out := network.NewQuantities()
	take := func(id string, v float64) {
		a := math.Abs(v)
		if cur, ok := out.Get(id); !ok || a > cur {
			out.Set(id, a)
		}
	}
	cons.Range(take)
	prod.Range(take)

	return out
}

// FluxByProcess returns the absolute value view of t.
func FluxByProcess(t network.Throughput) network.Throughput {
	out := make(network.Throughput, len(t))
	for i, r := range t {
		out[i] = network.Record{Material: r.Material, Process: r.Process, Value: math.Abs(r.Value)}
	}

	return out
}
