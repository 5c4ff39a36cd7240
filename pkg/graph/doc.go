// Package graph provides the core graph model and its serialization formats.
//
// This package defines the canonical data shapes for Graphmotion: raw input
// records, parsed nodes and edges, and the JSON wire formats used for files,
// API responses, and caching.
//
// # Identity Model
//
// Node identity is positional. The i-th input record becomes the node with
// Index i, and edges address nodes by that index. Parsing preserves order and
// count exactly, so callers can correlate layout results with their own data
// by position alone.
//
// # Core Types
//
//   - [Record]: raw caller-supplied node data (optional position, label, meta)
//   - [Node], [Edge]: parsed graph structure with layout state
//   - [Graph]: a parsed graph ready for layout
//   - [Dataset]: JSON input format (records plus edge index pairs)
//   - [Layout]: JSON output format (final positions)
//
// # Parsing
//
//	ds, _ := graph.ReadDatasetFile("graph.json")
//	g, err := ds.Parse()
//	if errors.Is(err, graph.ErrNodeReference) {
//	    // an edge addressed a node index that does not exist
//	}
//
// # Layout Serialization
//
// Engines write positions onto nodes in place; [Snapshot] captures the placed
// nodes as a [Layout] for storage or transport:
//
//	l := graph.Snapshot(g)
//	l.Engine = graph.EngineForce
//	graph.WriteLayoutFile(l, "layout.json")
//
// # Concurrency
//
// Graphs are not safe for concurrent mutation. The layout controller in
// pkg/layout serializes all access during computation.
package graph
