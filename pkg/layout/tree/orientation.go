package tree

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/hierarchy"
)

// applyOrientation maps canvas coordinates onto render space and writes
// them to the underlying graph nodes. Horizontal runs the depth axis left
// to right, vertical top to bottom. Radial treats breadth as an angle and
// depth as a radius around the origin, and stamps the angle on every node
// except the root so renderers can rotate labels along their spokes.
//
// Only nodes reachable from root are written; anything outside the
// hierarchy keeps whatever coordinates it had.
func applyOrientation(root *hierarchy.Node, o Orientation) {
	switch o {
	case Radial:
		root.Each(func(h *hierarchy.Node) {
			n := h.Data
			n.X = math.Cos(h.X) * h.Y
			n.Y = math.Sin(h.X) * h.Y
			if h.Parent == nil {
				n.Angle, n.HasAngle = 0, false
			} else {
				n.Angle, n.HasAngle = h.X, true
			}
		})
	case Vertical:
		root.Each(func(h *hierarchy.Node) {
			n := h.Data
			n.X = h.X - 1
			n.Y = -h.Y + 1
			n.Angle, n.HasAngle = 0, false
		})
	default:
		root.Each(func(h *hierarchy.Node) {
			n := h.Data
			n.X = h.Y - 1
			n.Y = -h.X + 1
			n.Angle, n.HasAngle = 0, false
		})
	}
}
