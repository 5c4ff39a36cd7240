package hierarchy

import (
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Node is a vertex in a rooted tree built over a parsed graph.
//
// Depth counts edges from the root (root 0), Height the longest downward
// path to a leaf (leaf 0), and Count the leaves in the subtree (1 for a
// leaf). Children are sorted as described in the package documentation.
type Node struct {
	Data     *graph.Node // underlying graph node
	Parent   *Node       // nil for the root
	Children []*Node

	Depth  int
	Height int
	Count  int

	// X and Y are scratch coordinates for layout algorithms. Build
	// leaves them zero; their meaning belongs to whoever runs the
	// layout.
	X, Y float64
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Each visits the subtree in pre-order: the node first, then its children
// left to right.
func (n *Node) Each(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Each(fn)
	}
}

// EachAfter visits the subtree in post-order: children left to right, then
// the node itself.
func (n *Node) EachAfter(fn func(*Node)) {
	for _, c := range n.Children {
		c.EachAfter(fn)
	}
	fn(n)
}

// Leaves returns the leaves of the subtree in traversal order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Each(func(m *Node) {
		if m.IsLeaf() {
			out = append(out, m)
		}
	})
	return out
}

// Size returns the number of nodes in the subtree, the node included.
func (n *Node) Size() int {
	total := 0
	n.Each(func(*Node) { total++ })
	return total
}
