package render

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
)

// DefaultScale converts render-space units into Graphviz points.
// Render space spans [-1,1] on both axes, so the default produces a
// drawing roughly 400 points across before margins.
const DefaultScale = 200.0

// Visual defaults for the emitted DOT source.
const (
	nodeFill   = "#e8f0fe"
	nodeStroke = "#4285f4"
	edgeColor  = "#9aa0a6"
	nodeWidth  = 0.4  // inches
	fontSize   = 10.0 // points
)

// Options controls artifact generation.
type Options struct {
	// Scale multiplies render-space coordinates into points.
	// Zero means DefaultScale, negative is rejected.
	Scale float64

	// HideLabels draws unlabeled circles. Nodes otherwise show their
	// record label, falling back to the positional index.
	HideLabels bool

	// PixelRatio multiplies PNG raster density. Zero means
	// [DefaultPixelRatio]. Vector formats ignore it.
	PixelRatio float64
}

func (o *Options) setDefaults() {
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ToDOT renders a layout as a pinned neato graph.
//
// Every node carries pos="x,y!" where the trailing bang tells neato to
// keep the computed position instead of running its own placement.
// Render space already has y growing upward, matching the DOT
// coordinate system, so coordinates scale straight through. Labels are
// validated before emission since they land in the source verbatim.
func ToDOT(l graph.Layout, opts Options) (string, error) {
	opts.setDefaults()
	if opts.Scale < 0 {
		return "", apperrors.New(apperrors.ErrCodeInvalidInput, "scale must be positive, got %g", opts.Scale)
	}
	for _, n := range l.Nodes {
		if err := apperrors.ValidateLabel(n.Label); err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "node %d", n.Index)
		}
	}

	var b strings.Builder
	b.WriteString("digraph layout {\n")
	b.WriteString("  layout=neato;\n")
	b.WriteString("  inputscale=72;\n")
	b.WriteString("  splines=line;\n")
	b.WriteString("  outputorder=edgesfirst;\n")
	b.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&b, "  node [shape=circle, style=filled, fillcolor=%q, color=%q, fixedsize=true, width=%g, fontsize=%g];\n",
		nodeFill, nodeStroke, nodeWidth, fontSize)
	fmt.Fprintf(&b, "  edge [color=%q, arrowsize=0.6];\n\n", edgeColor)

	for _, n := range l.Nodes {
		fmt.Fprintf(&b, "  n%d [label=%q, pos=%q];\n", n.Index, nodeLabel(n, opts), fmtPos(n, opts.Scale))
	}
	if len(l.Edges) > 0 {
		b.WriteString("\n")
		for _, e := range l.Edges {
			fmt.Fprintf(&b, "  n%d -> n%d;\n", e.Source, e.Target)
		}
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// nodeLabel picks the text drawn inside a node circle.
func nodeLabel(n graph.PlacedNode, opts Options) string {
	if opts.HideLabels {
		return ""
	}
	if n.Label != "" {
		return n.Label
	}
	return strconv.Itoa(n.Index)
}

// fmtPos formats a pinned position attribute in points.
// The %.2f precision keeps sources stable across runs that converge to
// the same placement within a hundredth of a point.
func fmtPos(n graph.PlacedNode, scale float64) string {
	return fmt.Sprintf("%.2f,%.2f!", n.X*scale, n.Y*scale)
}
