package layout

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// Extent is the bounding box of the placed nodes of a graph.
type Extent struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// ExtentOf computes the extent over nodes with finite coordinates.
// Unplaced nodes do not contribute. With no placed nodes the extent is
// empty and every scale call yields 0.
func ExtentOf(nodes []*graph.Node) Extent {
	e := Extent{
		MinX: math.Inf(1), MaxX: math.Inf(-1),
		MinY: math.Inf(1), MaxY: math.Inf(-1),
	}
	for _, n := range nodes {
		if !n.Placed() {
			continue
		}
		e.MinX = math.Min(e.MinX, n.X)
		e.MaxX = math.Max(e.MaxX, n.X)
		e.MinY = math.Min(e.MinY, n.Y)
		e.MaxY = math.Max(e.MaxY, n.Y)
	}
	return e
}

// ScaleX maps v into [-1, 1] relative to the horizontal extent.
// A degenerate axis, where every node shares one coordinate, maps to 0.
func (e Extent) ScaleX(v float64) float64 { return rescale(v, e.MinX, e.MaxX) }

// ScaleY maps v into [-1, 1] relative to the vertical extent.
func (e Extent) ScaleY(v float64) float64 { return rescale(v, e.MinY, e.MaxY) }

func rescale(v, min, max float64) float64 {
	if !(max > min) {
		return 0
	}
	return (v-min)/(max-min)*2 - 1
}

// Normalize rescales every placed node of g into the render space in place.
// Unplaced nodes are left untouched. The mapping is idempotent: a graph
// already spanning [-1, 1] on both axes comes out unchanged.
func Normalize(g *graph.Graph) {
	e := ExtentOf(g.Nodes)
	for _, n := range g.Nodes {
		if !n.Placed() {
			continue
		}
		n.X = e.ScaleX(n.X)
		n.Y = e.ScaleY(n.Y)
	}
}
