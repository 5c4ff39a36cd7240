package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// quadtree is a point index over the simulation's nodes, backing the
// Barnes-Hut traversal of the many-body force and the circle sweep of
// the collide force.
//
// Internal quads hold four children indexed bottom<<1|right; leaves hold
// a node and chain coincident nodes through next. The extent grows by
// doubling, so every split lands on a power-of-two grid. The scratch
// fields value, x, y and r belong to whichever force ran visitAfter
// last.
type quadtree struct {
	root           *quad
	x0, y0, x1, y1 float64
	px, py         func(*graph.Node) float64
}

type quad struct {
	children [4]*quad
	data     *graph.Node
	next     *quad

	value float64
	x, y  float64
	r     float64
}

func (q *quad) leaf() bool { return q.data != nil }

func newQuadtree(nodes []*graph.Node, px, py func(*graph.Node) float64) *quadtree {
	t := &quadtree{
		px: px, py: py,
		x0: math.NaN(), y0: math.NaN(),
		x1: math.NaN(), y1: math.NaN(),
	}
	for _, n := range nodes {
		t.add(n)
	}
	return t
}

// cover expands the extent to contain (x, y), wrapping the root in new
// parent quads as the extent doubles.
func (t *quadtree) cover(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	if math.IsNaN(t.x0) {
		t.x0 = math.Floor(x)
		t.y0 = math.Floor(y)
		t.x1 = t.x0 + 1
		t.y1 = t.y0 + 1
		return
	}

	z := t.x1 - t.x0
	if z == 0 {
		z = 1
	}
	node := t.root
	for t.x0 > x || x >= t.x1 || t.y0 > y || y >= t.y1 {
		i := 0
		if y < t.y0 {
			i |= 2
		}
		if x < t.x0 {
			i |= 1
		}
		parent := &quad{}
		parent.children[i] = node
		node = parent
		z *= 2
		switch i {
		case 0:
			t.x1, t.y1 = t.x0+z, t.y0+z
		case 1:
			t.x0, t.y1 = t.x1-z, t.y0+z
		case 2:
			t.x1, t.y0 = t.x0+z, t.y1-z
		case 3:
			t.x0, t.y0 = t.x1-z, t.y1-z
		}
	}
	// Only an internal root needs the wrapping; a lone leaf stays put.
	if t.root != nil && !t.root.leaf() {
		t.root = node
	}
}

func (t *quadtree) add(d *graph.Node) {
	x, y := t.px(d), t.py(d)
	if math.IsNaN(x) || math.IsNaN(y) {
		return
	}
	t.cover(x, y)

	leaf := &quad{data: d}
	if t.root == nil {
		t.root = leaf
		return
	}

	x0, y0, x1, y1 := t.x0, t.y0, t.x1, t.y1
	var parent *quad
	node := t.root
	var i int
	for !node.leaf() {
		xm, ym := (x0+x1)/2, (y0+y1)/2
		i = 0
		if y >= ym {
			i |= 2
			y0 = ym
		} else {
			y1 = ym
		}
		if x >= xm {
			i |= 1
			x0 = xm
		} else {
			x1 = xm
		}
		parent = node
		node = node.children[i]
		if node == nil {
			parent.children[i] = leaf
			return
		}
	}

	// Hit an occupied leaf: chain coincident points, otherwise split
	// until the two points land in different quadrants.
	xp, yp := t.px(node.data), t.py(node.data)
	if x == xp && y == yp {
		leaf.next = node
		if parent != nil {
			parent.children[i] = leaf
		} else {
			t.root = leaf
		}
		return
	}
	for {
		split := &quad{}
		if parent != nil {
			parent.children[i] = split
		} else {
			t.root = split
		}
		parent = split

		xm, ym := (x0+x1)/2, (y0+y1)/2
		i = 0
		if y >= ym {
			i |= 2
			y0 = ym
		} else {
			y1 = ym
		}
		if x >= xm {
			i |= 1
			x0 = xm
		} else {
			x1 = xm
		}
		j := 0
		if yp >= ym {
			j |= 2
		}
		if xp >= xm {
			j |= 1
		}
		if i != j {
			parent.children[j] = node
			parent.children[i] = leaf
			return
		}
	}
}

type quadFrame struct {
	q              *quad
	x0, y0, x1, y1 float64
}

// visit walks quads pre-order with their bounds. Returning true skips
// the quad's children.
func (t *quadtree) visit(fn func(q *quad, x0, y0, x1, y1 float64) bool) {
	if t.root == nil {
		return
	}
	stack := []quadFrame{{t.root, t.x0, t.y0, t.x1, t.y1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if fn(f.q, f.x0, f.y0, f.x1, f.y1) || f.q.leaf() {
			continue
		}
		xm, ym := (f.x0+f.x1)/2, (f.y0+f.y1)/2
		if c := f.q.children[3]; c != nil {
			stack = append(stack, quadFrame{c, xm, ym, f.x1, f.y1})
		}
		if c := f.q.children[2]; c != nil {
			stack = append(stack, quadFrame{c, f.x0, ym, xm, f.y1})
		}
		if c := f.q.children[1]; c != nil {
			stack = append(stack, quadFrame{c, xm, f.y0, f.x1, ym})
		}
		if c := f.q.children[0]; c != nil {
			stack = append(stack, quadFrame{c, f.x0, f.y0, xm, ym})
		}
	}
}

// visitAfter walks quads post-order, children before parents, which lets
// forces accumulate aggregates bottom-up.
func (t *quadtree) visitAfter(fn func(q *quad)) {
	if t.root == nil {
		return
	}
	stack := []*quad{t.root}
	var out []*quad
	for len(stack) > 0 {
		q := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, q)
		for _, c := range q.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	for i := len(out) - 1; i >= 0; i-- {
		fn(out[i])
	}
}
