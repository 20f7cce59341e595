// SPDX-License-Identifier: MIT
// File: table.go
// Role: insertion-ordered scalar table used for quantities and edge tables.
// Determinism:
//   - Keys() and Range() visit keys in first-insertion order.
// Concurrency:
//   - Not synchronized. Tables are built by one goroutine and read-only
//     afterwards; callers that share a table must not mutate it.

package network

// Table is an insertion-ordered map from K to float64.
// The zero value is ready to use.
type Table[K comparable] struct {
	keys   []K
	values map[K]float64
}

// NewTable returns an empty table.
func NewTable[K comparable]() *Table[K] {
	return &Table[K]{values: make(map[K]float64)}
}

// Set stores v under k, keeping the original position of an existing key.
func (t *Table[K]) Set(k K, v float64) {
	if t.values == nil {
		t.values = make(map[K]float64)
	}
	if _, ok := t.values[k]; !ok {
		t.keys = append(t.keys, k)
	}
	t.values[k] = v
}

// Add accumulates v into k.
func (t *Table[K]) Add(k K, v float64) {
	t.Set(k, t.Value(k)+v)
}

// Get returns the value stored under k and whether it exists.
func (t *Table[K]) Get(k K) (float64, bool) {
	if t == nil {
		return 0, false
	}
	v, ok := t.values[k]

	return v, ok
}

// Value returns the value under k, or zero when absent.
func (t *Table[K]) Value(k K) float64 {
	v, _ := t.Get(k)

	return v
}

// Has reports whether k is present.
func (t *Table[K]) Has(k K) bool {
	_, ok := t.Get(k)

	return ok
}

// Delete removes k. Complexity: O(n) to keep the order slice compact.
func (t *Table[K]) Delete(k K) {
	if !t.Has(k) {
		return
	}
	delete(t.values, k)
	for i, key := range t.keys {
		if key == k {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
}

// Keys returns a copy of the keys in insertion order.
func (t *Table[K]) Keys() []K {
	if t == nil {
		return nil
	}
	out := make([]K, len(t.keys))
	copy(out, t.keys)

	return out
}

// Len returns the number of keys.
func (t *Table[K]) Len() int {
	if t == nil {
		return 0
	}

	return len(t.keys)
}

// Range calls fn for every entry in insertion order.
func (t *Table[K]) Range(fn func(k K, v float64)) {
	if t == nil {
		return
	}
	for _, k := range t.keys {
		fn(k, t.values[k])
	}
}

// Clone returns an independent copy.
func (t *Table[K]) Clone() *Table[K] {
	out := NewTable[K]()
	t.Range(out.Set)

	return out
}

// Map returns the entries as a plain map (for encoding).
func (t *Table[K]) Map() map[K]float64 {
	out := make(map[K]float64, t.Len())
	t.Range(func(k K, v float64) { out[k] = v })

	return out
}
