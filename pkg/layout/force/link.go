package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Link is a spring along every edge, pushing or pulling its endpoints
// toward a rest distance. Higher-degree endpoints move less: each spring
// is biased toward the end with fewer edges, which keeps hubs stable.
type Link struct {
	// Distance returns the rest length of edge i; nil means 30.
	Distance func(i int, e graph.Edge) float64

	// Strength returns the spring constant of edge i; nil uses
	// 1/min(degree(source), degree(target)).
	Strength func(i int, e graph.Edge) float64

	// Iterations per tick; more iterations stiffen the constraints.
	Iterations int

	edges     []graph.Edge
	nodes     []*graph.Node
	random    func() float64
	bias      []float64
	strengths []float64
	distances []float64
}

// NewLink returns a link force over an independent copy of edges. Edge
// endpoints index into the node slice the force is initialized with.
func NewLink(edges []graph.Edge) *Link {
	return &Link{
		Iterations: 1,
		edges:      append([]graph.Edge(nil), edges...),
	}
}

func (l *Link) Initialize(nodes []*graph.Node, random func() float64) {
	l.nodes, l.random = nodes, random

	count := make([]int, len(nodes))
	for _, e := range l.edges {
		count[e.Source]++
		count[e.Target]++
	}

	l.bias = make([]float64, len(l.edges))
	l.strengths = make([]float64, len(l.edges))
	l.distances = make([]float64, len(l.edges))
	for i, e := range l.edges {
		cs, ct := count[e.Source], count[e.Target]
		l.bias[i] = float64(cs) / float64(cs+ct)
		if l.Strength != nil {
			l.strengths[i] = l.Strength(i, e)
		} else {
			l.strengths[i] = 1 / float64(min(cs, ct))
		}
		if l.Distance != nil {
			l.distances[i] = l.Distance(i, e)
		} else {
			l.distances[i] = 30
		}
	}
}

func (l *Link) Apply(alpha float64) {
	for k := 0; k < l.Iterations; k++ {
		for i, e := range l.edges {
			src, dst := l.nodes[e.Source], l.nodes[e.Target]
			x := dst.X + dst.VX - src.X - src.VX
			if x == 0 {
				x = jiggle(l.random)
			}
			y := dst.Y + dst.VY - src.Y - src.VY
			if y == 0 {
				y = jiggle(l.random)
			}
			d := math.Sqrt(x*x + y*y)
			d = (d - l.distances[i]) / d * alpha * l.strengths[i]
			x *= d
			y *= d

			b := l.bias[i]
			dst.VX -= x * b
			dst.VY -= y * b
			b = 1 - b
			src.VX += x * b
			src.VY += y * b
		}
	}
}
