package tree

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/hierarchy"
)

// Mode selects the placement algorithm.
type Mode string

const (
	// ModeDendrogram places all leaves on one rail, internal nodes
	// centered over their children.
	ModeDendrogram Mode = "dendrogram"

	// ModeTree is the tidy layout: depth follows tree distance and
	// subtrees stay compact.
	ModeTree Mode = "tree"
)

// Orientation maps canvas coordinates into render space.
type Orientation string

// The three supported orientations. The wire names in pkg/graph match.
const (
	Horizontal Orientation = graph.OrientationHorizontal
	Vertical   Orientation = graph.OrientationVertical
	Radial     Orientation = graph.OrientationRadial
)

// Options configures a tree engine.
type Options struct {
	// Mode defaults to ModeDendrogram.
	Mode Mode

	// Orientation defaults to Horizontal.
	Orientation Orientation

	// Root and Children forward to [hierarchy.Build].
	Root     *int
	Children func(*graph.Node) []int
}

func (o *Options) setDefaults() {
	if o.Mode == "" {
		o.Mode = ModeDendrogram
	}
	if o.Orientation == "" {
		o.Orientation = Horizontal
	}
}

// canvasSize returns the placement canvas for an orientation: breadth
// and depth span [0, 2] each, except radially where breadth is an angle
// in [0, 2π] and depth a radius in [0, 1].
func canvasSize(o Orientation) (dx, dy float64) {
	if o == Radial {
		return 2 * math.Pi, 1
	}
	return 2, 2
}

// separation follows the layout convention: siblings sit one unit apart,
// nodes under different parents two.
func separation(a, b *hierarchy.Node) float64 {
	if a.Parent == b.Parent {
		return 1
	}
	return 2
}
