package flow_test

import (
	"fmt"

	"github.com/matzehuels/flowviz/pkg/flow"
)

func ExampleGraph_Ingest() {
	g := flow.New()
	_, _ = g.Ingest(flow.Record{ID: "crude", Depth: 0, Downstream: []string{"diesel", "petrol"}})
	_, _ = g.Ingest(flow.Record{ID: "diesel", Depth: 1})
	_, _ = g.Ingest(flow.Record{ID: "petrol", Depth: 1})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Depths:", g.Depths())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Depths: [0 1]
}

func ExampleWithLegacyLayers() {
	g := flow.New(flow.WithLegacyLayers())
	_, _ = g.Ingest(flow.Record{ID: "a", Depth: 0})
	_, _ = g.Ingest(flow.Record{ID: "a", Depth: 1})

	fmt.Println(len(g.Layer(0)), len(g.Layer(1)))
	// Output:
	// 1 1
}
