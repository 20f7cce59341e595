// SPDX-License-Identifier: MIT
// File: nodelink.go
// Role: node-link document (networkx node_link_data layout).

package converters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/yosukefk/chemnetrowk-vis/builder"
	"github.com/yosukefk/chemnetrowk-vis/core"
)

// Reserved keys of node and link objects.
const (
	KeyID     = "id"
	KeySource = "source"
	KeyTarget = "target"
)

// NodeLink is the serializable form of a graph.
type NodeLink struct {
	Directed   bool                     `json:"directed" msgpack:"directed"`
	Multigraph bool                     `json:"multigraph" msgpack:"multigraph"`
	Graph      map[string]interface{}   `json:"graph" msgpack:"graph"`
	Nodes      []map[string]interface{} `json:"nodes" msgpack:"nodes"`
	Links      []map[string]interface{} `json:"links" msgpack:"links"`
}

// ToNodeLink flattens g: one object per vertex ("id" plus metadata) and
// per edge ("source", "target" plus metadata), in insertion order.
// Complexity: O(V + E) objects, attributes copied shallowly.
func ToNodeLink(g *core.Graph) *NodeLink {
	nl := &NodeLink{
		Directed: g.Directed(),
		Graph:    g.Attrs(),
		Nodes:    []map[string]interface{}{},
		Links:    []map[string]interface{}{},
	}
	for _, id := range g.Vertices() {
		v, err := g.Vertex(id)
		if err != nil {
			continue
		}
		obj := make(map[string]interface{}, len(v.Metadata)+1)
		for k, val := range v.Metadata {
			obj[k] = val
		}
		obj[KeyID] = id
		nl.Nodes = append(nl.Nodes, obj)
	}
	for _, e := range g.Edges() {
		obj := make(map[string]interface{}, len(e.Metadata)+2)
		for k, val := range e.Metadata {
			obj[k] = val
		}
		obj[KeySource] = e.From
		obj[KeyTarget] = e.To
		nl.Links = append(nl.Links, obj)
	}

	return nl
}

// FromNodeLink rebuilds a graph. Edge weights come from the "flux"
// attribute when it is numeric, 0 otherwise.
//
// Errors: ErrMalformed for objects without string ids/endpoints, core
// errors for duplicate edges.
func FromNodeLink(nl *NodeLink) (*core.Graph, error) {
	g := core.NewGraph(core.WithDirected(nl.Directed))
	for k, v := range nl.Graph {
		if err := g.SetAttr(k, v); err != nil {
			return nil, err
		}
	}
	for i, obj := range nl.Nodes {
		id, ok := obj[KeyID].(string)
		if !ok || id == "" {
			return nil, fmt.Errorf("node %d: %w", i, ErrMalformed)
		}
		if err := g.AddVertex(id); err != nil {
			return nil, err
		}
		for k, v := range obj {
			if k == KeyID {
				continue
			}
			if err := g.SetVertexAttr(id, k, v); err != nil {
				return nil, err
			}
		}
	}
	for i, obj := range nl.Links {
		src, ok1 := obj[KeySource].(string)
		dst, ok2 := obj[KeyTarget].(string)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("link %d: %w", i, ErrMalformed)
		}
		w, _ := toFloat(obj[builder.AttrFlux])
		if _, err := g.AddEdge(src, dst, w); err != nil {
			return nil, fmt.Errorf("link %d %s→%s: %w", i, src, dst, err)
		}
		for k, v := range obj {
			if k == KeySource || k == KeyTarget {
				continue
			}
			if err := g.SetEdgeAttr(src, dst, k, v); err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

// WriteJSON writes the node-link form of g to w, indented when pretty.
func WriteJSON(w io.Writer, g *core.Graph, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(ToNodeLink(g)); err != nil {
		return fmt.Errorf("converters: json: %w", err)
	}

	return nil
}

// toFloat accepts the numeric shapes produced by encoding/json and msgpack.
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}

	return 0, false
}
