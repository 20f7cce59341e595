// SPDX-License-Identifier: MIT
// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edge/Edges/EdgeCount,
//       per-edge attribute writes, and nextEdgeID().
// Determinism:
//   - Edges() returns edges in insertion order.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is the textual prefix for edge identifiers ("e1", "e2", ...).
const edgeIDPrefix = 'e'

// AddEdge creates a new edge from→to carrying weight.
//
// Steps:
//  1. Validate IDs and reject self-loops.
//  2. Ensure endpoints via AddVertex.
//  3. Lock muEdgeAdj, reject a second edge for the same ordered pair.
//  4. Generate eid atomically, store the Edge and link adjacency.
//  5. Mirror adjacency for undirected graphs.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	// 1) Input validation
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to {
		return "", ErrLoopNotAllowed
	}

	// 2) Ensure vertices exist
	if err := g.AddVertex(from); err != nil {
		return "", err
	}
	if err := g.AddVertex(to); err != nil {
		return "", err
	}
	directed := g.Directed()

	// 3) Insert edge under lock
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.adjacency[from][to]; ok {
		return "", ErrMultiEdgeNotAllowed
	}

	// 4) Store and link adjacency
	eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Weight: weight, Metadata: make(map[string]interface{})}
	g.edgeOrder = append(g.edgeOrder, eid)
	ensureAdjacency(g, from)
	g.adjacency[from][to] = eid

	// 5) Mirror undirected
	if !directed && from != to {
		ensureAdjacency(g, to)
		g.adjacency[to][from] = eid
	}

	return eid, nil
}

// HasEdge reports whether an edge from→to exists. Undirected edges are
// mirrored, so HasEdge works both ways for them.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	if from == "" || to == "" {
		return false
	}
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacency[from][to]

	return ok
}

// Edge returns the edge from→to, or ErrEdgeNotFound.
// The returned *Edge must be treated as read-only; use SetEdgeAttr to mutate.
func (g *Graph) Edge(from, to string) (*Edge, error) {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	eid, ok := g.adjacency[from][to]
	if !ok {
		return nil, ErrEdgeNotFound
	}

	return g.edges[eid], nil
}

// Edges returns all edges in insertion order.
// Complexity: O(E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, eid := range g.edgeOrder {
		out = append(out, g.edges[eid])
	}

	return out
}

// EdgeCount returns total number of edges.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// SetEdgeAttr stores value under key in the metadata of edge from→to.
//
// Errors: ErrEmptyAttrKey, ErrEdgeNotFound.
// Concurrency: write lock on muEdgeAdj.
func (g *Graph) SetEdgeAttr(from, to, key string, value interface{}) error {
	if key == "" {
		return ErrEmptyAttrKey
	}
	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	eid, ok := g.adjacency[from][to]
	if !ok {
		return ErrEdgeNotFound
	}
	g.edges[eid].Metadata[key] = value

	return nil
}

// ensureAdjacency allocates the inner adjacency map for from.
// Caller must hold muEdgeAdj.
func ensureAdjacency(g *Graph, from string) {
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]string)
	}
}

// nextEdgeID returns a new unique textual edge ID.
//
// Uses a monotonic uint64 counter incremented atomically and produces
// "e" + decimal digits without fmt allocations.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 1+20) // "e" + up to 20 digits for uint64
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}
