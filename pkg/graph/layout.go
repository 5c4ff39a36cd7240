package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Engine and Orientation Names
// =============================================================================

// Layout engine names. pkg/layout registers an engine factory under each.
const (
	EngineGraph      = "graph"
	EngineTree       = "tree"
	EngineDendrogram = "dendrogram"
	EngineForce      = "force"
)

// Tree orientations.
const (
	OrientationHorizontal = "horizontal"
	OrientationVertical   = "vertical"
	OrientationRadial     = "radial"
)

// Engines lists the known engine names in registration order.
func Engines() []string {
	return []string{EngineGraph, EngineTree, EngineDendrogram, EngineForce}
}

// ValidEngine reports whether name is a known engine name.
func ValidEngine(name string) bool {
	switch name {
	case EngineGraph, EngineTree, EngineDendrogram, EngineForce:
		return true
	}
	return false
}

// ValidOrientation reports whether name is a known tree orientation.
func ValidOrientation(name string) bool {
	switch name {
	case OrientationHorizontal, OrientationVertical, OrientationRadial:
		return true
	}
	return false
}

// =============================================================================
// Layout - Output Serialization
// =============================================================================

// Layout is the serialization format for a computed layout.
//
// Positions are in the normalized render space [-1, 1] on both axes.
// Consumers address nodes through [PlacedNode.Index], never by slice
// position: nodes that never received finite coordinates are absent.
type Layout struct {
	Engine      string       `json:"engine" bson:"engine"`
	Orientation string       `json:"orientation,omitempty" bson:"orientation,omitempty"`
	Settled     bool         `json:"settled,omitempty" bson:"settled,omitempty"`
	Nodes       []PlacedNode `json:"nodes" bson:"nodes"`
	Edges       []Edge       `json:"edges,omitempty" bson:"edges,omitempty"`
}

// PlacedNode is a node with final coordinates.
// Angle is nil unless a radial layout assigned one.
type PlacedNode struct {
	Index int      `json:"index" bson:"index"`
	Label string   `json:"label,omitempty" bson:"label,omitempty"`
	X     float64  `json:"x" bson:"x"`
	Y     float64  `json:"y" bson:"y"`
	Angle *float64 `json:"angle,omitempty" bson:"angle,omitempty"`
}

// Snapshot captures the placed nodes of a graph as a Layout.
// Nodes without finite coordinates are left out, which keeps the result
// JSON-safe. Edges are copied so the snapshot stays stable across resyncs.
func Snapshot(g *Graph) Layout {
	l := Layout{
		Nodes: make([]PlacedNode, 0, len(g.Nodes)),
		Edges: append([]Edge(nil), g.Edges...),
	}
	for _, n := range g.Nodes {
		if !n.Placed() {
			continue
		}
		p := PlacedNode{Index: n.Index, X: n.X, Y: n.Y}
		if n.Record != nil {
			p.Label = n.Record.Label
		}
		if n.HasAngle {
			a := n.Angle
			p.Angle = &a
		}
		l.Nodes = append(l.Nodes, p)
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates the engine and orientation names when present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if l.Engine != "" && !ValidEngine(l.Engine) {
		return Layout{}, fmt.Errorf("unknown engine %q", l.Engine)
	}
	if l.Orientation != "" && !ValidOrientation(l.Orientation) {
		return Layout{}, fmt.Errorf("unknown orientation %q", l.Orientation)
	}

	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
