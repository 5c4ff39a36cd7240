package tree

import (
	"github.com/graphmotion/graphmotion/pkg/hierarchy"
)

// cluster places the hierarchy as a dendrogram on a dx-by-dy canvas.
//
// A post-order walk spaces the leaves along the breadth axis by their
// separation and stacks internal nodes one unit above the tallest child.
// A second walk then rescales breadth into [0, dx], with half a
// separation of margin beyond the outermost leaves, and flips depth so
// the root sits at 0 and the leaf rail at dy.
func cluster(root *hierarchy.Node, dx, dy float64) {
	var prev *hierarchy.Node
	x := 0.0

	root.EachAfter(func(n *hierarchy.Node) {
		if len(n.Children) > 0 {
			n.X = meanX(n.Children)
			n.Y = 1 + maxY(n.Children)
			return
		}
		if prev != nil {
			x += separation(n, prev)
			n.X = x
		} else {
			n.X = 0
		}
		n.Y = 0
		prev = n
	})

	left := leafLeft(root)
	right := leafRight(root)
	x0 := left.X - separation(left, right)/2
	x1 := right.X + separation(right, left)/2
	rootY := root.Y

	root.EachAfter(func(n *hierarchy.Node) {
		n.X = (n.X - x0) / (x1 - x0) * dx
		f := 1.0
		if rootY != 0 {
			f = n.Y / rootY
		}
		n.Y = (1 - f) * dy
	})
}

func meanX(children []*hierarchy.Node) float64 {
	sum := 0.0
	for _, c := range children {
		sum += c.X
	}
	return sum / float64(len(children))
}

func maxY(children []*hierarchy.Node) float64 {
	max := children[0].Y
	for _, c := range children[1:] {
		if c.Y > max {
			max = c.Y
		}
	}
	return max
}

// leafLeft descends along first children to the leftmost leaf.
func leafLeft(n *hierarchy.Node) *hierarchy.Node {
	for len(n.Children) > 0 {
		n = n.Children[0]
	}
	return n
}

// leafRight descends along last children to the rightmost leaf.
func leafRight(n *hierarchy.Node) *hierarchy.Node {
	for len(n.Children) > 0 {
		n = n.Children[len(n.Children)-1]
	}
	return n
}
