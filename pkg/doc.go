// Package pkg provides the core libraries for Graphmotion 2D graph layout.
//
// # Overview
//
// Graphmotion computes 2D positions for graph datasets so hosts can draw and
// animate them: static position pass-through, tidy trees, dendrograms, and a
// force-directed simulation. The pkg directory is organized into four areas:
//
//  1. [graph] - Dataset parsing and layout serialization
//  2. [layout] - Normalization, engines, and the layout controller
//  3. [pipeline] - Orchestration (parse → layout → render) with caching
//  4. [render] - Positioned DOT emission and Graphviz SVG/PNG output
//
// # Architecture
//
// The typical data flow through Graphmotion:
//
//	Dataset JSON (nodes + edges)
//	         ↓
//	    [graph] package (parse into positional-index graph)
//	         ↓
//	    [layout] package (engine computes positions in [-1,1]²)
//	         ↓
//	    [render] package (positioned DOT, Graphviz SVG/PNG)
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Parse a dataset and run the force simulation to convergence:
//
//	import (
//	    "github.com/graphmotion/graphmotion/pkg/graph"
//	    "github.com/graphmotion/graphmotion/pkg/layout"
//	    "github.com/graphmotion/graphmotion/pkg/layout/force"
//	)
//
//	// 1. Parse the dataset
//	d, _ := graph.ReadDatasetFile("miserables.json")
//	g, _ := d.Parse()
//
//	// 2. Run the simulation
//	sim := force.NewSimulation(g.Nodes)
//	sim.AddForce("center", force.NewCenter())
//	sim.AddForce("charge", force.NewManyBody())
//	sim.AddForce("link", force.NewLink(g.Edges))
//	for !sim.Step() {
//	}
//
//	// 3. Normalize and snapshot
//	layout.Normalize(g)
//	l := graph.Snapshot(g)
//
// # Main Packages
//
// ## Core Domain Logic
//
// [graph] - Dataset records, edges, the parsed positional-index graph, and
// the Layout serialization format shared by every consumer.
//
// [hierarchy] - Single-root tree construction over a parsed graph with
// height/leaf-count annotation and orderable siblings, the input shape the
// tree engines consume.
//
// [layout] - The coordinate normalizer, the Engine interface, the frame
// scheduler, and the Controller state machine that drives engines through
// resync/reset/relayout/stop.
//
// [layout/tree] - Tidy tree and dendrogram placement in three orientations
// (horizontal, vertical, radial).
//
// [layout/force] - The force simulation: alpha schedule, velocity Verlet
// integration, and the named force table (center, link, many-body, collide,
// positioning springs, radial) over a Barnes-Hut quadtree.
//
// [layout/engines] - Name-to-factory catalog the CLI and server use to look
// engines up without importing them individually.
//
// ## Host Glue
//
// [pipeline] - Complete layout pipeline (parse → layout → render) used by
// CLI and server. Ensures consistent behavior across all entry points, with
// content-hash cache keys at every stage.
//
// [render] - Positioned DOT emission and Graphviz rendering with pinned
// node positions.
//
// [cache] - Cache interface with file, null, Redis, and MongoDB backends
// plus the content-hash keyer the pipeline builds its keys with.
//
// [events] - Layout lifecycle event publishing (no-op and NATS backends).
//
// [config] - TOML configuration for CLI and server defaults.
//
// [errors] - Coded errors surfaced by the CLI and the HTTP API.
//
// [observability] - Hook interfaces for instrumenting pipeline and cache
// operations without coupling the core to a metrics backend.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Run the cached pipeline end to end:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    DatasetPath: "miserables.json",
//	    Engine:      graph.EngineForce,
//	    Formats:     []string{"svg"},
//	})
//
// Drive a live simulation with the controller:
//
//	factory, _ := engines.New(graph.EngineForce, engines.Options{})
//	ctrl := layout.NewController(factory, layout.Options{Scheduler: sched})
//	ctrl.ResyncDataset(d)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/force/...       # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [graph]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/graph
// [hierarchy]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/layout
// [layout/tree]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/layout/tree
// [layout/force]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/layout/force
// [layout/engines]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/layout/engines
// [pipeline]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/render
// [cache]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/cache
// [events]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/events
// [config]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/config
// [errors]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/errors
// [observability]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/graphmotion/graphmotion/pkg/buildinfo
package pkg
