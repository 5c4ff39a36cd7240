package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// ManyBody applies mutual charge between every pair of nodes: negative
// strength repels, positive attracts. Far-away regions are approximated
// by their center of charge through a Barnes-Hut quadtree, keeping a
// tick near O(n log n).
type ManyBody struct {
	// Strength per node; nil means a constant -30.
	Strength func(*graph.Node) float64

	// Theta2 is the squared Barnes-Hut accuracy threshold. Regions
	// whose squared width over distance stays below it are approximated.
	Theta2 float64

	// DistanceMin2 and DistanceMax2 clamp the squared interaction
	// range, avoiding infinite forces up close and wasted work far out.
	DistanceMin2 float64
	DistanceMax2 float64

	nodes     []*graph.Node
	random    func() float64
	strengths []float64
}

// NewManyBody returns a repulsive many-body force with the standard
// tuning: strength -30, theta² 0.81, distance clamps [1, +Inf).
func NewManyBody() *ManyBody {
	return &ManyBody{
		Theta2:       0.81,
		DistanceMin2: 1,
		DistanceMax2: math.Inf(1),
	}
}

func (m *ManyBody) Initialize(nodes []*graph.Node, random func() float64) {
	m.nodes, m.random = nodes, random
	m.strengths = make([]float64, len(nodes))
	for i, n := range nodes {
		if m.Strength != nil {
			m.strengths[i] = m.Strength(n)
		} else {
			m.strengths[i] = -30
		}
	}
}

func (m *ManyBody) Apply(alpha float64) {
	tree := newQuadtree(m.nodes,
		func(n *graph.Node) float64 { return n.X },
		func(n *graph.Node) float64 { return n.Y },
	)
	tree.visitAfter(m.accumulate)
	for _, n := range m.nodes {
		m.applyNode(tree, n, alpha)
	}
}

// accumulate computes each quad's total charge and center of charge,
// weighting children by absolute charge so opposite signs don't cancel
// the center away.
func (m *ManyBody) accumulate(q *quad) {
	if !q.leaf() {
		var strength, weight, x, y float64
		for _, c := range q.children {
			if c == nil {
				continue
			}
			w := math.Abs(c.value)
			if w == 0 {
				continue
			}
			strength += c.value
			weight += w
			x += w * c.x
			y += w * c.y
		}
		q.x = x / weight
		q.y = y / weight
		q.value = strength
		return
	}
	q.x = q.data.X
	q.y = q.data.Y
	strength := 0.0
	for c := q; c != nil; c = c.next {
		strength += m.strengths[c.data.Index]
	}
	q.value = strength
}

func (m *ManyBody) applyNode(tree *quadtree, node *graph.Node, alpha float64) {
	tree.visit(func(q *quad, qx0, _, qx1, _ float64) bool {
		if q.value == 0 {
			return true
		}
		x := q.x - node.X
		y := q.y - node.Y
		w := qx1 - qx0
		l := x*x + y*y

		// Far enough away: treat the whole region as one charge.
		if w*w/m.Theta2 < l {
			if l < m.DistanceMax2 {
				if x == 0 {
					x = jiggle(m.random)
					l += x * x
				}
				if y == 0 {
					y = jiggle(m.random)
					l += y * y
				}
				if l < m.DistanceMin2 {
					l = math.Sqrt(m.DistanceMin2 * l)
				}
				node.VX += x * q.value * alpha / l
				node.VY += y * q.value * alpha / l
			}
			return true
		}
		if !q.leaf() || l >= m.DistanceMax2 {
			return false
		}

		// Leaf within range: apply each coincident node directly.
		if q.data != node || q.next != nil {
			if x == 0 {
				x = jiggle(m.random)
				l += x * x
			}
			if y == 0 {
				y = jiggle(m.random)
				l += y * y
			}
			if l < m.DistanceMin2 {
				l = math.Sqrt(m.DistanceMin2 * l)
			}
		}
		for c := q; c != nil; c = c.next {
			if c.data != node {
				k := m.strengths[c.data.Index] * alpha / l
				node.VX += x * k
				node.VY += y * k
			}
		}
		return false
	})
}
