// SPDX-License-Identifier: MIT
// Package core defines the central Graph, Vertex, and Edge types,
// and provides thread-safe primitives for building and querying graphs.
//
// All core APIs use separate sync.RWMutex locks internally (muVert for vertices
// and graph attributes, muEdgeAdj for edges and adjacency), so a graph can be
// populated from several goroutines.
//
// This file declares Vertex, Edge, Graph, GraphOption, sentinel errors,
// and the NewGraph constructor.
package core

import (
	"errors"
	"sync"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyVertexID indicates that the provided Vertex has an empty ID.
	ErrEmptyVertexID = errors.New("core: vertex ID is empty")

	// ErrVertexNotFound indicates an operation referenced a non-existent vertex.
	ErrVertexNotFound = errors.New("core: vertex not found")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")

	// ErrLoopNotAllowed indicates an edge from a vertex to itself.
	ErrLoopNotAllowed = errors.New("core: self-loop not allowed")

	// ErrMultiEdgeNotAllowed indicates a second edge between the same ordered pair.
	ErrMultiEdgeNotAllowed = errors.New("core: multi-edges not allowed")

	// ErrEmptyAttrKey indicates an attribute write with an empty key.
	ErrEmptyAttrKey = errors.New("core: attribute key is empty")
)

// Vertex represents a node in the graph.
//
// ID uniquely identifies this Vertex within its Graph.
// Metadata stores exported attributes (flux, demand, series arrays, ...).
type Vertex struct {
	// ID is the unique identifier for this Vertex.
	ID string

	// Metadata stores arbitrary attribute data keyed by attribute name.
	Metadata map[string]interface{}
}

// Edge represents a connection between two vertices.
//
// Each Edge has a unique ID, endpoints From→To, a float64 Weight and
// its own attribute map.
type Edge struct {
	// ID uniquely identifies this edge in the Graph.
	ID string

	// From is the source vertex ID.
	From string

	// To is the destination vertex ID.
	To string

	// Weight is the flow magnitude carried by the edge.
	Weight float64

	// Metadata stores arbitrary attribute data keyed by attribute name.
	Metadata map[string]interface{}
}

// GraphOption configures behavior of a Graph before creation.
type GraphOption func(g *Graph)

// WithDirected sets the orientation for all edges
// (true = directed, false = undirected).
func WithDirected(directed bool) GraphOption {
	return func(g *Graph) { g.directed = directed }
}

// Graph is the core in-memory graph data structure.
//
// muVert protects vertices, vertexOrder and attrs; muEdgeAdj protects edges,
// edgeOrder and adjacency. When both are needed muVert is taken first.
// nextEdgeID is an atomic counter for unique Edge.ID generation.
type Graph struct {
	muVert    sync.RWMutex // guards vertices and graph attributes
	muEdgeAdj sync.RWMutex // guards edges and adjacency

	directed bool // edge orientation

	// Storage
	nextEdgeID  uint64                 // atomic edge ID generator
	vertices    map[string]*Vertex     // vertex ID → Vertex
	vertexOrder []string               // insertion order of vertex IDs
	edges       map[string]*Edge       // edge ID → Edge
	edgeOrder   []string               // insertion order of edge IDs
	attrs       map[string]interface{} // graph-level attributes

	// adjacency[from][to] = edge ID; undirected edges are mirrored.
	adjacency map[string]map[string]string
}

// NewGraph creates an empty Graph with the given options.
// By default, Graph is undirected. Self-loops are always rejected.
// Complexity: O(1)
func NewGraph(opts ...GraphOption) *Graph {
	g := &Graph{
		vertices:  make(map[string]*Vertex),
		edges:     make(map[string]*Edge),
		attrs:     make(map[string]interface{}),
		adjacency: make(map[string]map[string]string),
	}
	// Apply options
	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Directed reports whether edges are one-way.
func (g *Graph) Directed() bool {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return g.directed
}
