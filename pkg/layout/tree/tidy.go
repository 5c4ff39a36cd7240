package tree

import (
	"github.com/graphmotion/graphmotion/pkg/hierarchy"
)

// treeNode wraps a hierarchy node with the bookkeeping of the tidy
// layout: preliminary position z, modifier m, shift and change
// accumulators s and c, thread t, default ancestor A, ancestor a, and
// sibling index i.
type treeNode struct {
	node     *hierarchy.Node
	parent   *treeNode
	children []*treeNode

	A *treeNode // default ancestor
	a *treeNode // ancestor
	t *treeNode // thread

	z float64 // preliminary x
	m float64 // modifier
	c float64 // change
	s float64 // shift

	i int // sibling index
}

func newTreeNode(n *hierarchy.Node, i int) *treeNode {
	t := &treeNode{node: n, i: i}
	t.a = t
	return t
}

// wrap builds the working tree plus a synthetic parent above the root,
// which gives every real node a parent to carry modifiers.
func wrap(root *hierarchy.Node) *treeNode {
	tr := newTreeNode(root, 0)
	stack := []*treeNode{tr}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		kids := v.node.Children
		if len(kids) == 0 {
			continue
		}
		v.children = make([]*treeNode, len(kids))
		for i := len(kids) - 1; i >= 0; i-- {
			c := newTreeNode(kids[i], i)
			c.parent = v
			v.children[i] = c
			stack = append(stack, c)
		}
	}
	parent := newTreeNode(nil, 0)
	parent.children = []*treeNode{tr}
	tr.parent = parent
	return tr
}

func (v *treeNode) eachAfter(fn func(*treeNode)) {
	for _, c := range v.children {
		c.eachAfter(fn)
	}
	fn(v)
}

func (v *treeNode) eachBefore(fn func(*treeNode)) {
	fn(v)
	for _, c := range v.children {
		c.eachBefore(fn)
	}
}

// tidy places the hierarchy with the Buchheim-Jünger-Leipert linear-time
// algorithm and rescales the result onto a dx-by-dy canvas: breadth in
// [0, dx] with half a separation of margin, depth proportional to tree
// depth in [0, dy].
func tidy(root *hierarchy.Node, dx, dy float64) {
	tr := wrap(root)
	tr.eachAfter(firstWalk)
	tr.parent.m = -tr.z
	tr.eachBefore(secondWalk)

	left, right, bottom := root, root, root
	root.Each(func(n *hierarchy.Node) {
		if n.X < left.X {
			left = n
		}
		if n.X > right.X {
			right = n
		}
		if n.Depth > bottom.Depth {
			bottom = n
		}
	})

	s := 1.0
	if left != right {
		s = separation(left, right) / 2
	}
	tx := s - left.X
	kx := dx / (right.X + s + tx)
	den := float64(bottom.Depth)
	if den == 0 {
		den = 1
	}
	ky := dy / den

	root.Each(func(n *hierarchy.Node) {
		n.X = (n.X + tx) * kx
		n.Y = float64(n.Depth) * ky
	})
}

// firstWalk computes preliminary positions bottom-up.
func firstWalk(v *treeNode) {
	siblings := v.parent.children
	var w *treeNode
	if v.i > 0 {
		w = siblings[v.i-1]
	}

	if len(v.children) > 0 {
		executeShifts(v)
		midpoint := (v.children[0].z + v.children[len(v.children)-1].z) / 2
		if w != nil {
			v.z = w.z + separation(v.node, w.node)
			v.m = v.z - midpoint
		} else {
			v.z = midpoint
		}
	} else if w != nil {
		v.z = w.z + separation(v.node, w.node)
	}

	anc := v.parent.A
	if anc == nil {
		anc = siblings[0]
	}
	v.parent.A = apportion(v, w, anc)
}

// secondWalk turns accumulated modifiers into absolute positions.
func secondWalk(v *treeNode) {
	v.node.X = v.z + v.parent.m
	v.m += v.parent.m
}

// apportion resolves contour conflicts between a subtree and its left
// siblings, shifting the subtree right until no overlap remains.
func apportion(v, w, ancestor *treeNode) *treeNode {
	if w == nil {
		return ancestor
	}

	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.m, vop.m
	sim, som := vim.m, vom.m

	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.a = v
		shift := vim.z + sim - vip.z - sip + separation(vim.node, vip.node)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.m
		sip += vip.m
		som += vom.m
		sop += vop.m
	}

	if vim != nil && nextRight(vop) == nil {
		vop.t = vim
		vop.m += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.t = vip
		vom.m += sip - som
		ancestor = v
	}
	return ancestor
}

// nextLeft walks the left contour: first child, or the thread on a leaf.
func nextLeft(v *treeNode) *treeNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.t
}

// nextRight walks the right contour: last child, or the thread on a leaf.
func nextRight(v *treeNode) *treeNode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.t
}

func nextAncestor(vim, v, ancestor *treeNode) *treeNode {
	if vim.a.parent == v.parent {
		return vim.a
	}
	return ancestor
}

// moveSubtree shifts wp and everything under it right by shift,
// spreading the change across the siblings between wm and wp.
func moveSubtree(wm, wp *treeNode, shift float64) {
	change := shift / float64(wp.i-wm.i)
	wp.c -= change
	wp.s += shift
	wm.c += change
	wp.z += shift
	wp.m += shift
}

// executeShifts applies buffered shifts to v's children right to left.
func executeShifts(v *treeNode) {
	shift, change := 0.0, 0.0
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.z += shift
		w.m += shift
		change += w.c
		shift += w.s + change
	}
}
