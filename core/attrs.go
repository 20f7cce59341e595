// SPDX-License-Identifier: MIT
// File: attrs.go
// Role: graph-level attributes (title, series labels, descriptions) and a
//       read-only Stats snapshot.

package core

// SetAttr stores a graph-level attribute.
// Errors: ErrEmptyAttrKey.
func (g *Graph) SetAttr(key string, value interface{}) error {
	if key == "" {
		return ErrEmptyAttrKey
	}
	g.muVert.Lock()
	defer g.muVert.Unlock()
	g.attrs[key] = value

	return nil
}

// Attr returns a graph-level attribute and whether it was set.
func (g *Graph) Attr(key string) (interface{}, bool) {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.attrs[key]

	return v, ok
}

// Attrs returns a shallow copy of the graph-level attributes.
func (g *Graph) Attrs() map[string]interface{} {
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	out := make(map[string]interface{}, len(g.attrs))
	for k, v := range g.attrs {
		out[k] = v
	}

	return out
}

// GraphStats is a point-in-time snapshot of configuration and sizes.
type GraphStats struct {
	Directed    bool
	VertexCount int
	EdgeCount   int
	TotalWeight float64
}

// Stats returns a deterministic snapshot of flags, catalog sizes and the
// sum of edge weights.
// Complexity: O(E).
func (g *Graph) Stats() GraphStats {
	st := GraphStats{
		Directed:    g.Directed(),
		VertexCount: g.VertexCount(),
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	st.EdgeCount = len(g.edges)
	for _, eid := range g.edgeOrder {
		st.TotalWeight += g.edges[eid].Weight
	}

	return st
}
