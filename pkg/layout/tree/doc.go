// Package tree implements the tree and dendrogram layout engines.
//
// Both engines build a rooted hierarchy over the graph, place it on a
// fixed canvas, and map the canvas into render space through one of three
// orientations:
//
//   - Horizontal: depth grows left to right, first sibling on top
//   - Vertical: depth grows top to bottom, first sibling on the left
//   - Radial: depth grows outward from the center, breadth becomes angle
//
// The dendrogram placement puts every leaf on a shared rail and centers
// internal nodes over their children. The tree placement is the tidy
// layout of Buchheim, Jünger, and Leipert, which keeps subtrees compact
// while siblings stay evenly separated.
//
// Placement is deterministic and synchronous; the engine notifies the
// controller once, on the frame after positions are written.
package tree
