// SPDX-License-Identifier: MIT

package condense

import "github.com/yosukefk/chemnetrowk-vis/network"

// Throughput remaps every record's material and sums records that collide
// on (material, process). Records that net to exactly zero are dropped,
// since a zero value means "not involved".
// Complexity: O(n).
func (m *Mapping) Throughput(t network.Throughput) network.Throughput {
	type key struct{ mat, proc string }
	idx := make(map[key]int, len(t))
	out := make(network.Throughput, 0, len(t))
	for _, r := range t {
		k := key{mat: m.Resolve(r.Material), proc: r.Process}
		if i, ok := idx[k]; ok {
			out[i].Value += r.Value
			continue
		}
		idx[k] = len(out)
		out = append(out, network.Record{Material: k.mat, Process: k.proc, Value: r.Value})
	}

	return out.Filter(func(r network.Record) bool { return r.Value != 0 })
}

// Quantities remaps and sums a per-material table.
func (m *Mapping) Quantities(q *network.Quantities) *network.Quantities {
	out := network.NewQuantities()
	q.Range(func(id string, v float64) { out.Add(m.Resolve(id), v) })

	return out
}

// IDs remaps a list of identifiers, dropping duplicates and keeping
// first-seen order.
func (m *Mapping) IDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		c := m.Resolve(id)
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	return out
}
