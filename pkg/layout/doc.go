// Package layout coordinates layout engines over parsed graphs.
//
// # Overview
//
// A [Controller] owns one graph and one [Engine] and drives the layout
// lifecycle: parse new data, seed or re-seed the engine, and forward render
// requests to the host while the engine works. Engines compute positions;
// the controller never does.
//
// # Lifecycle
//
// The controller moves through four states:
//
//	Unparsed → Parsed → Computing ⟲ → Settled
//
// [Controller.Resync] replaces the data (full reparse), [Controller.Reset]
// re-seeds the current graph without reparsing, [Controller.Relayout]
// resumes computation on unchanged data, and [Controller.Stop] halts
// asynchronous work where it stands. All four are safe to call in any state.
//
// # Render Space
//
// Engines deliver positions in the normalized render space: [-1, 1] on both
// axes. [Normalize] and [Extent] implement the mapping; a degenerate axis
// (every node sharing one coordinate) collapses to 0 instead of dividing by
// zero.
//
// # Frame Scheduling
//
// Asynchronous engines step once per host frame through a [Scheduler].
// [IntervalScheduler] approximates a 60 fps frame loop for headless use;
// [ManualScheduler] hands frame control to tests and TUIs. Scheduling a
// step and cancelling it are cheap, so engines re-request a frame after
// every tick instead of holding a loop.
//
// # Engines
//
// The concrete engines live in subpackages (tree layouts in
// pkg/layout/tree, force simulation in pkg/layout/force); the static
// pass-through engine for pre-positioned data is [NewStatic] in this
// package. pkg/layout/engines carries the name-to-factory catalog.
package layout
