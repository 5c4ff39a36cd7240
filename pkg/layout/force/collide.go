package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Collide treats every node as a circle and pushes overlapping pairs
// apart, splitting the correction by squared radius so small circles
// yield to large ones. Overlap is tested against anticipated positions
// (position plus velocity), which stabilizes fast-moving clusters.
type Collide struct {
	// Radius per node; nil means a constant 1.
	Radius func(*graph.Node) float64

	// Strength scales each correction; 1 resolves overlap fully.
	Strength float64

	// Iterations per tick; more iterations give a stiffer packing.
	Iterations int

	nodes  []*graph.Node
	random func() float64
	radii  []float64
}

// NewCollide returns a collision force with unit radius, full strength,
// one iteration.
func NewCollide() *Collide {
	return &Collide{Strength: 1, Iterations: 1}
}

func (c *Collide) Initialize(nodes []*graph.Node, random func() float64) {
	c.nodes, c.random = nodes, random
	c.radii = make([]float64, len(nodes))
	for i, n := range nodes {
		if c.Radius != nil {
			c.radii[i] = c.Radius(n)
		} else {
			c.radii[i] = 1
		}
	}
}

func (c *Collide) Apply(_ float64) {
	for k := 0; k < c.Iterations; k++ {
		tree := newQuadtree(c.nodes,
			func(n *graph.Node) float64 { return n.X + n.VX },
			func(n *graph.Node) float64 { return n.Y + n.VY },
		)
		tree.visitAfter(c.prepare)
		for _, node := range c.nodes {
			c.applyNode(tree, node)
		}
	}
}

// prepare stamps every quad with the largest radius beneath it, so the
// sweep can prune regions no circle reaches into.
func (c *Collide) prepare(q *quad) {
	if q.leaf() {
		q.r = c.radii[q.data.Index]
		return
	}
	q.r = 0
	for _, child := range q.children {
		if child != nil && child.r > q.r {
			q.r = child.r
		}
	}
}

func (c *Collide) applyNode(tree *quadtree, node *graph.Node) {
	ri := c.radii[node.Index]
	ri2 := ri * ri
	xi := node.X + node.VX
	yi := node.Y + node.VY

	tree.visit(func(q *quad, qx0, qy0, qx1, qy1 float64) bool {
		rj := q.r
		r := ri + rj
		if q.leaf() {
			data := q.data
			// Each pair resolves once, on the lower-index node's sweep.
			if data.Index > node.Index {
				x := xi - data.X - data.VX
				y := yi - data.Y - data.VY
				l := x*x + y*y
				if l < r*r {
					if x == 0 {
						x = jiggle(c.random)
						l += x * x
					}
					if y == 0 {
						y = jiggle(c.random)
						l += y * y
					}
					l = math.Sqrt(l)
					l = (r - l) / l * c.Strength
					x *= l
					y *= l
					rj *= rj
					p := rj / (ri2 + rj)
					node.VX += x * p
					node.VY += y * p
					p = 1 - p
					data.VX -= x * p
					data.VY -= y * p
				}
			}
			return false
		}
		return qx0 > xi+r || qx1 < xi-r || qy0 > yi+r || qy1 < yi-r
	})
}
