// Package core provides the thread-safe in-memory graph container that
// carries a material flow network from assembly to export.
//
// The Graph G = (V,E) is deliberately small:
//
//   - Directed vs. undirected edges (WithDirected)
//   - No self-loops
//   - float64 edge weights (allocated flow magnitudes are fractional)
//   - At most one edge per ordered endpoint pair
//   - Free-form attribute maps on vertices, edges and the graph itself
//   - Insertion-ordered iteration: Vertices() and Edges() return elements
//     in the order they were first added, so exports are reproducible
//   - Separate sync.RWMutex for vertices+graph attributes (muVert) and
//     edges+adjacency (muEdgeAdj)
//
// Core Methods:
//
//	// Vertex lifecycle
//	AddVertex(id string) error                        // O(1), idempotent
//	HasVertex(id string) bool                         // O(1)
//	Vertex(id string) (*Vertex, error)                // O(1)
//	SetVertexAttr(id, key string, v interface{}) error
//
//	// Edge lifecycle
//	AddEdge(from, to string, weight float64) (edgeID string, err error)
//	HasEdge(from, to string) bool                     // O(1)
//	Edge(from, to string) (*Edge, error)              // O(1)
//	SetEdgeAttr(from, to, key string, v interface{}) error
//
//	// Graph attributes
//	SetAttr(key string, v interface{}) / Attr(key) / Attrs()
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrLoopNotAllowed      – edge from a vertex to itself
//	ErrMultiEdgeNotAllowed – second edge between the same ordered pair
//	ErrEmptyAttrKey        – attribute key is the empty string
package core
