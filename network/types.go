// SPDX-License-Identifier: MIT

package network

// Material describes a chemical species or an aggregate product-group node.
// Name and Category are owned by the input dataset and never modified.
type Material struct {
	ID       string `json:"id" msgpack:"id" validate:"required"`
	Name     string `json:"name,omitempty" msgpack:"name,omitempty"`
	Category string `json:"category,omitempty" msgpack:"category,omitempty"`
}

// Process describes a production/consumption activity.
type Process struct {
	ID       string `json:"id" msgpack:"id" validate:"required"`
	Name     string `json:"name,omitempty" msgpack:"name,omitempty"`
	Category string `json:"category,omitempty" msgpack:"category,omitempty"`
}

// Record is one signed throughput entry keyed by (Material, Process).
// Value < 0: consumed by the process; Value > 0: produced by it.
type Record struct {
	Material string
	Process  string
	Value    float64
}

// Consumed reports whether the record is a consumption entry.
func (r Record) Consumed() bool { return r.Value < 0 }

// Produced reports whether the record is a production entry.
func (r Record) Produced() bool { return r.Value > 0 }

// ProcessRows is the slice of records belonging to one process.
type ProcessRows struct {
	Process string
	Rows    []Record
}

// Throughput is the signed (material, process) table of one scenario.
type Throughput []Record

// GroupByProcess partitions the table by process, keeping processes in
// first-seen order and rows in table order.
// Complexity: O(n).
func (t Throughput) GroupByProcess() []ProcessRows {
	idx := make(map[string]int)
	var out []ProcessRows
	for _, r := range t {
		i, ok := idx[r.Process]
		if !ok {
			i = len(out)
			idx[r.Process] = i
			out = append(out, ProcessRows{Process: r.Process})
		}
		out[i].Rows = append(out[i].Rows, r)
	}

	return out
}

// Materials returns the distinct materials in first-seen order.
func (t Throughput) Materials() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t {
		if !seen[r.Material] {
			seen[r.Material] = true
			out = append(out, r.Material)
		}
	}

	return out
}

// Processes returns the distinct processes in first-seen order.
func (t Throughput) Processes() []string {
	rows := t.GroupByProcess()
	out := make([]string, len(rows))
	for i, pr := range rows {
		out[i] = pr.Process
	}

	return out
}

// Filter returns the records for which keep reports true.
func (t Throughput) Filter(keep func(Record) bool) Throughput {
	out := make(Throughput, 0, len(t))
	for _, r := range t {
		if keep(r) {
			out = append(out, r)
		}
	}

	return out
}

// ByMaterial returns material → (process → value). Duplicate
// (material, process) rows are summed.
func (t Throughput) ByMaterial() map[string]map[string]float64 {
	out := make(map[string]map[string]float64)
	for _, r := range t {
		inner, ok := out[r.Material]
		if !ok {
			inner = make(map[string]float64)
			out[r.Material] = inner
		}
		inner[r.Process] += r.Value
	}

	return out
}

// Quantities is a per-material scalar table (demand, supply, flux, ...).
type Quantities = Table[string]

// NewQuantities returns an empty quantity table.
func NewQuantities() *Quantities { return NewTable[string]() }

// EdgeKey identifies a material→material edge: Consumer is the material
// consumed by a process, Producer the material that process produces.
type EdgeKey struct {
	Consumer string
	Producer string
}

// Reverse returns the key with consumer and producer swapped.
func (k EdgeKey) Reverse() EdgeKey { return EdgeKey{Consumer: k.Producer, Producer: k.Consumer} }

// ProcessEdgeKey identifies the share of an edge contributed by one process.
type ProcessEdgeKey struct {
	Consumer string
	Producer string
	Process  string
}

// Pair drops the process from the key.
func (k ProcessEdgeKey) Pair() EdgeKey { return EdgeKey{Consumer: k.Consumer, Producer: k.Producer} }

// Edges is the edges-by-material table.
type Edges = Table[EdgeKey]

// ProcessEdges is the edges-by-process table.
type ProcessEdges = Table[ProcessEdgeKey]

// NewEdges returns an empty edges-by-material table.
func NewEdges() *Edges { return NewTable[EdgeKey]() }

// NewProcessEdges returns an empty edges-by-process table.
func NewProcessEdges() *ProcessEdges { return NewTable[ProcessEdgeKey]() }

// BreakdownByPair regroups an edges-by-process table into
// pair → (process → value).
// Complexity: O(n).
func BreakdownByPair(t *ProcessEdges) map[EdgeKey]map[string]float64 {
	out := make(map[EdgeKey]map[string]float64)
	t.Range(func(k ProcessEdgeKey, v float64) {
		inner, ok := out[k.Pair()]
		if !ok {
			inner = make(map[string]float64)
			out[k.Pair()] = inner
		}
		inner[k.Process] += v
	})

	return out
}

// ProductGroup is a named set of member materials sharing one demand figure.
type ProductGroup struct {
	ID      string   `json:"id"`
	Members []string `json:"members"`
	Demand  float64  `json:"demand"`
}
