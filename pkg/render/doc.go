// Package render turns computed layouts into artifacts.
//
// # Overview
//
// A [graph.Layout] carries node positions in render space, the
// [-1,1]x[-1,1] square with y growing upward. This package converts
// that into:
//
//   - DOT sources with every node pinned to its computed position
//   - SVG and PNG images via Graphviz (neato honors the pins)
//   - indented layout JSON for host applications
//
// # Positioned DOT
//
// [ToDOT] emits a neato graph where each node carries pos="x,y!". The
// trailing bang pins the node, so Graphviz draws edges and labels
// around the positions the layout engines computed instead of running
// its own placement.
//
//	dot, err := render.ToDOT(layout, render.Options{})
//	svg, err := render.RenderSVG(dot)
//
// # Formats
//
// The [Render] dispatcher bundles the format switch for pipeline use:
//
//	artifact, err := render.Render(layout, render.FormatSVG, render.Options{})
//
// [Formats] lists every name Render accepts.
package render
