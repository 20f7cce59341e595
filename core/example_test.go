package core_test

import (
	"fmt"

	"github.com/yosukefk/chemnetrowk-vis/core"
)

// ExampleGraph demonstrates building a small directed flow graph.
func ExampleGraph() {
	g := core.NewGraph(core.WithDirected(true))

	_, _ = g.AddEdge("ETHANE", "ETHYLENE", 10)
	_, _ = g.AddEdge("ETHYLENE", "POLYETHYLENE", 4)
	_ = g.SetVertexAttr("ETHYLENE", "flux", 10.0)

	fmt.Println("Vertices:", g.Vertices())
	for _, e := range g.Edges() {
		fmt.Printf("%s -> %s (%g)\n", e.From, e.To, e.Weight)
	}

	// Output:
	// Vertices: [ETHANE ETHYLENE POLYETHYLENE]
	// ETHANE -> ETHYLENE (10)
	// ETHYLENE -> POLYETHYLENE (4)
}
