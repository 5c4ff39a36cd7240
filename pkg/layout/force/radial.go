package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Radial pulls nodes toward a circle of a given radius around a center
// point, which shapes otherwise free layouts into rings.
type Radial struct {
	// Radius per node; nil means the fixed radius passed to NewRadial.
	Radius func(*graph.Node) float64

	// Strength per node; nil means 0.1.
	Strength func(*graph.Node) float64

	r, cx, cy float64
	nodes     []*graph.Node
	radii     []float64
	strengths []float64
}

// NewRadial returns a radial force toward the circle of the given radius
// centered on (cx, cy).
func NewRadial(radius, cx, cy float64) *Radial {
	return &Radial{r: radius, cx: cx, cy: cy}
}

func (f *Radial) Initialize(nodes []*graph.Node, _ func() float64) {
	f.nodes = nodes
	f.radii = make([]float64, len(nodes))
	f.strengths = make([]float64, len(nodes))
	for i, n := range nodes {
		if f.Radius != nil {
			f.radii[i] = f.Radius(n)
		} else {
			f.radii[i] = f.r
		}
		if f.Strength != nil {
			f.strengths[i] = f.Strength(n)
		} else {
			f.strengths[i] = 0.1
		}
	}
}

func (f *Radial) Apply(alpha float64) {
	for i, n := range f.nodes {
		dx := n.X - f.cx
		if dx == 0 {
			dx = 1e-6
		}
		dy := n.Y - f.cy
		if dy == 0 {
			dy = 1e-6
		}
		r := math.Sqrt(dx*dx + dy*dy)
		k := (f.radii[i] - r) * f.strengths[i] * alpha / r
		n.VX += dx * k
		n.VY += dy * k
	}
}
