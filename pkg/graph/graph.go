package graph

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrNodeReference indicates an edge endpoint outside the node index range.
var ErrNodeReference = errors.New("edge references unknown node index")

// =============================================================================
// Tag - Node Lifecycle
// =============================================================================

// Tag describes how a node entered the current layout generation.
//
// Engines consult the tag when seeding state: a Fresh node has no usable
// history and receives an initial placement, while a Carried node keeps the
// position (and velocity) it arrived with.
type Tag int

const (
	// TagFresh marks a node first seen in this generation.
	TagFresh Tag = iota

	// TagCarried marks a node that arrived with an explicit position or
	// kept state from a previous generation.
	TagCarried
)

// String returns the tag name for logs and debugging.
func (t Tag) String() string {
	switch t {
	case TagFresh:
		return "fresh"
	case TagCarried:
		return "carried"
	default:
		return fmt.Sprintf("tag(%d)", int(t))
	}
}

// =============================================================================
// Record - Raw Node Data
// =============================================================================

// Record is a raw node record as supplied by the caller.
//
// X and Y are optional: nil means the node has no predetermined position and
// a layout engine must place it. Meta carries arbitrary caller data and is
// never read or written by the layout packages.
type Record struct {
	X     *float64       `json:"x,omitempty" bson:"x,omitempty"`
	Y     *float64       `json:"y,omitempty" bson:"y,omitempty"`
	Label string         `json:"label,omitempty" bson:"label,omitempty"`
	Meta  map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a parsed vertex with layout state.
//
// Coordinates are NaN until an engine places the node. Angle is only
// meaningful when HasAngle is set: radial layouts assign angles to every
// node except the root, whose angle stays unset.
type Node struct {
	Index    int
	X, Y     float64
	VX, VY   float64
	Angle    float64
	HasAngle bool
	Tag      Tag

	// Record points back at the record this node was parsed from. It is
	// shared with the caller, never copied, so position lookups through
	// the node and through the original slice see the same data.
	Record *Record
}

// Placed reports whether the node has finite coordinates on both axes.
func (n *Node) Placed() bool {
	return finite(n.X) && finite(n.Y)
}

// DisplayLabel returns the record label when set, otherwise the index.
func (n *Node) DisplayLabel() string {
	if n.Record != nil && n.Record.Label != "" {
		return n.Record.Label
	}
	return strconv.Itoa(n.Index)
}

// Edge is a directed edge addressing nodes by index.
type Edge struct {
	Source int `json:"source" bson:"source"`
	Target int `json:"target" bson:"target"`
}

// =============================================================================
// Graph
// =============================================================================

// Graph is a parsed graph ready for layout.
//
// Nodes and Edges preserve input order. The slices belong to the graph;
// engines mutate node state in place but never reorder or resize them.
type Graph struct {
	Nodes []*Node
	Edges []Edge
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// =============================================================================
// Parsing
// =============================================================================

// Parse converts raw records and edge index pairs into a Graph.
//
// The i-th record becomes the node with Index i, so node order and count
// always match the input, and each node's Record field aliases the caller's
// record. Records carrying both coordinates produce placed nodes tagged
// [TagCarried]; all others start at NaN tagged [TagFresh]. Edges are copied
// into a fresh slice. Any endpoint outside [0, len(records)) fails with
// [ErrNodeReference].
func Parse(records []Record, edges []Edge) (*Graph, error) {
	g := &Graph{
		Nodes: make([]*Node, len(records)),
		Edges: make([]Edge, len(edges)),
	}

	for i := range records {
		r := &records[i]
		n := &Node{Index: i, X: math.NaN(), Y: math.NaN(), Record: r}
		if r.X != nil {
			n.X = *r.X
		}
		if r.Y != nil {
			n.Y = *r.Y
		}
		if r.X != nil && r.Y != nil {
			n.Tag = TagCarried
		}
		g.Nodes[i] = n
	}

	for i, e := range edges {
		if e.Source < 0 || e.Source >= len(records) {
			return nil, fmt.Errorf("edge %d: source %d: %w", i, e.Source, ErrNodeReference)
		}
		if e.Target < 0 || e.Target >= len(records) {
			return nil, fmt.Errorf("edge %d: target %d: %w", i, e.Target, ErrNodeReference)
		}
		g.Edges[i] = e
	}

	return g, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
