package force

import (
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Center translates all nodes so their mean position sits at (X, Y).
// It shifts positions directly instead of accelerating nodes, which
// keeps the layout from drifting without fighting the other forces.
type Center struct {
	// X, Y is the target center.
	X, Y float64

	// Strength scales the correction per tick; 1 recenters fully.
	Strength float64

	nodes []*graph.Node
}

// NewCenter returns a centering force on the origin with full strength.
func NewCenter() *Center {
	return &Center{Strength: 1}
}

func (c *Center) Initialize(nodes []*graph.Node, _ func() float64) {
	c.nodes = nodes
}

func (c *Center) Apply(_ float64) {
	n := len(c.nodes)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, nd := range c.nodes {
		sx += nd.X
		sy += nd.Y
	}
	sx = (sx/float64(n) - c.X) * c.Strength
	sy = (sy/float64(n) - c.Y) * c.Strength
	for _, nd := range c.nodes {
		nd.X -= sx
		nd.Y -= sy
	}
}
