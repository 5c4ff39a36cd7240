// Package hierarchy builds rooted trees over parsed graphs for tree layouts.
//
// # Overview
//
// Tree and dendrogram layouts need a rooted view of the graph: every node has
// one parent, siblings have a deterministic order, and each node knows its
// depth, height, and leaf count. [Build] derives that view from a
// [graph.Graph] without touching the graph itself.
//
// # Basic Usage
//
//	g, _ := graph.Parse(records, edges)
//	root, err := hierarchy.Build(g, hierarchy.Options{})
//	root.Each(func(n *hierarchy.Node) {
//	    fmt.Println(n.Data.Index, n.Depth)
//	})
//
// By default children are the targets of edges whose source is the node, and
// the root is the first node with no incoming edge (index 0 when every node
// has one). Both can be overridden through [Options].
//
// # Sibling Order
//
// Children are sorted by descending [Node.Height], ties broken by descending
// original index. Layouts therefore place taller subtrees first, which keeps
// output stable across runs for the same input.
//
// # Preconditions
//
// The reachable subgraph must be a tree. Reaching the same node through two
// paths (a diamond or a cycle) fails with [ErrNotTree]; nodes unreachable
// from the root are simply absent from the result.
package hierarchy
