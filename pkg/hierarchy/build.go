package hierarchy

import (
	"errors"
	"fmt"
	"slices"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

var (
	// ErrEmptyGraph is returned by [Build] when the graph has no nodes.
	ErrEmptyGraph = errors.New("cannot build hierarchy of empty graph")

	// ErrBadRoot is returned by [Build] when the requested root index is
	// outside the graph's node range.
	ErrBadRoot = errors.New("root index out of range")

	// ErrNotTree is returned by [Build] when the same node is reachable
	// through more than one path from the root.
	ErrNotTree = errors.New("graph reachable from root is not a tree")
)

// Options configures [Build]. The zero value derives children from the
// graph's edges and picks the root automatically.
type Options struct {
	// Root selects the root node by index. Nil picks the first node
	// without an incoming edge, falling back to index 0.
	Root *int

	// Children overrides how child indices are derived for a node.
	// Nil uses the graph's edges: targets of edges whose source is the
	// node, in edge order.
	Children func(*graph.Node) []int
}

// Build derives a rooted tree from the graph.
//
// The graph itself is never modified. Nodes unreachable from the root are
// absent from the result; reaching a node twice fails with [ErrNotTree].
// After construction every node carries Depth, Height, and Count, and
// children are sorted by descending height with descending-index ties.
func Build(g *graph.Graph, opts Options) (*Node, error) {
	if g == nil || len(g.Nodes) == 0 {
		return nil, ErrEmptyGraph
	}

	children := opts.Children
	if children == nil {
		adj := childrenFromEdges(g)
		children = func(n *graph.Node) []int { return adj[n.Index] }
	}

	rootIdx, err := pickRoot(g, opts.Root)
	if err != nil {
		return nil, err
	}

	root := &Node{Data: g.Nodes[rootIdx]}
	seen := make([]bool, len(g.Nodes))
	seen[rootIdx] = true

	// Breadth-first expansion so Depth is assigned on the way down.
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, ci := range children(n.Data) {
			if ci < 0 || ci >= len(g.Nodes) {
				return nil, fmt.Errorf("child %d of node %d: %w", ci, n.Data.Index, graph.ErrNodeReference)
			}
			if seen[ci] {
				return nil, fmt.Errorf("node %d reached twice: %w", ci, ErrNotTree)
			}
			seen[ci] = true
			c := &Node{Data: g.Nodes[ci], Parent: n, Depth: n.Depth + 1}
			n.Children = append(n.Children, c)
			queue = append(queue, c)
		}
	}

	root.EachAfter(func(n *Node) {
		if n.IsLeaf() {
			n.Count = 1
			return
		}
		for _, c := range n.Children {
			if c.Height+1 > n.Height {
				n.Height = c.Height + 1
			}
			n.Count += c.Count
		}
	})

	// Taller subtrees first; later input positions win ties.
	root.Each(func(n *Node) {
		slices.SortFunc(n.Children, func(a, b *Node) int {
			if a.Height != b.Height {
				return b.Height - a.Height
			}
			return b.Data.Index - a.Data.Index
		})
	})

	return root, nil
}

// childrenFromEdges builds the adjacency list used by the default child
// accessor: targets of edges whose source is the node, in edge order.
func childrenFromEdges(g *graph.Graph) [][]int {
	adj := make([][]int, len(g.Nodes))
	for _, e := range g.Edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

func pickRoot(g *graph.Graph, explicit *int) (int, error) {
	if explicit != nil {
		if *explicit < 0 || *explicit >= len(g.Nodes) {
			return 0, fmt.Errorf("root %d: %w", *explicit, ErrBadRoot)
		}
		return *explicit, nil
	}

	incoming := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		incoming[e.Target]++
	}
	for i, deg := range incoming {
		if deg == 0 {
			return i, nil
		}
	}
	return 0, nil
}
