package graph_test

import (
	"errors"
	"fmt"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

func ExampleParse() {
	x, y := 1.0, -1.0
	records := []graph.Record{
		{Label: "root"},
		{Label: "leaf", X: &x, Y: &y},
	}
	edges := []graph.Edge{{Source: 0, Target: 1}}

	g, err := graph.Parse(records, edges)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Node 1 tag:", g.Nodes[1].Tag)
	// Output:
	// Nodes: 2
	// Edges: 1
	// Node 1 tag: carried
}

func ExampleParse_badEdge() {
	// Edges address records by position, so target 5 does not exist here.
	records := []graph.Record{{Label: "a"}, {Label: "b"}}
	edges := []graph.Edge{{Source: 0, Target: 5}}

	_, err := graph.Parse(records, edges)
	fmt.Println(errors.Is(err, graph.ErrNodeReference))
	// Output:
	// true
}

func ExampleUnmarshalDataset() {
	data := []byte(`{
		"nodes": [{"label": "a"}, {"label": "b"}],
		"edges": [{"source": 0, "target": 1}]
	}`)

	d, err := graph.UnmarshalDataset(data)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	g, _ := d.Parse()
	fmt.Println("Parsed", g.NodeCount(), "nodes")
	// Output:
	// Parsed 2 nodes
}

func ExampleSnapshot() {
	g, _ := graph.Parse([]graph.Record{{Label: "a"}, {Label: "b"}}, nil)
	g.Nodes[0].X, g.Nodes[0].Y = -1, 0
	g.Nodes[1].X, g.Nodes[1].Y = 1, 0

	l := graph.Snapshot(g)
	l.Engine = graph.EngineForce

	data, _ := graph.MarshalLayout(l)
	fmt.Println(string(data))
	// Output:
	// {
	//   "engine": "force",
	//   "nodes": [
	//     {
	//       "index": 0,
	//       "label": "a",
	//       "x": -1,
	//       "y": 0
	//     },
	//     {
	//       "index": 1,
	//       "label": "b",
	//       "x": 1,
	//       "y": 0
	//     }
	//   ]
	// }
}
