package force

import (
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// X is a spring pulling each node toward a target x coordinate. The
// gentle default strength positions loosely without overpowering the
// structural forces.
type X struct {
	// Target per node; nil means 0.
	Target func(*graph.Node) float64

	// Strength per node; nil means 0.1.
	Strength func(*graph.Node) float64

	nodes     []*graph.Node
	targets   []float64
	strengths []float64
}

// NewX returns an x-positioning force toward 0.
func NewX() *X { return &X{} }

func (f *X) Initialize(nodes []*graph.Node, _ func() float64) {
	f.nodes = nodes
	f.targets, f.strengths = positionTables(nodes, f.Target, f.Strength)
}

func (f *X) Apply(alpha float64) {
	for i, n := range f.nodes {
		n.VX += (f.targets[i] - n.X) * f.strengths[i] * alpha
	}
}

// Y is the vertical counterpart of [X].
type Y struct {
	// Target per node; nil means 0.
	Target func(*graph.Node) float64

	// Strength per node; nil means 0.1.
	Strength func(*graph.Node) float64

	nodes     []*graph.Node
	targets   []float64
	strengths []float64
}

// NewY returns a y-positioning force toward 0.
func NewY() *Y { return &Y{} }

func (f *Y) Initialize(nodes []*graph.Node, _ func() float64) {
	f.nodes = nodes
	f.targets, f.strengths = positionTables(nodes, f.Target, f.Strength)
}

func (f *Y) Apply(alpha float64) {
	for i, n := range f.nodes {
		n.VY += (f.targets[i] - n.Y) * f.strengths[i] * alpha
	}
}

func positionTables(nodes []*graph.Node, target, strength func(*graph.Node) float64) (targets, strengths []float64) {
	targets = make([]float64, len(nodes))
	strengths = make([]float64, len(nodes))
	for i, n := range nodes {
		if target != nil {
			targets[i] = target(n)
		}
		if strength != nil {
			strengths[i] = strength(n)
		} else {
			strengths[i] = 0.1
		}
	}
	return targets, strengths
}
