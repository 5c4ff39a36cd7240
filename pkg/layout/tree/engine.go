package tree

import (
	"fmt"
	"sync"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/hierarchy"
	"github.com/graphmotion/graphmotion/pkg/layout"
)

// New returns a factory for a tree engine with the given options. The
// same engine serves both modes; [Options.Mode] picks the algorithm.
func New(opts Options) layout.Factory {
	opts.setDefaults()
	return func(env layout.Env) layout.Engine {
		return &engine{opts: opts, env: env}
	}
}

type engine struct {
	mu     sync.Mutex
	opts   Options
	env    layout.Env
	graph  *graph.Graph
	root   *hierarchy.Node
	cancel func()
}

// Resync rebuilds the hierarchy for g and places it. A graph whose
// reachable part is not a tree fails here and leaves the engine without
// a placement; an empty graph settles immediately.
func (e *engine) Resync(g *graph.Graph) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.graph, e.root = g, nil
	if g.NodeCount() == 0 {
		e.scheduleSettleLocked()
		return nil
	}

	root, err := hierarchy.Build(g, hierarchy.Options{
		Root:     e.opts.Root,
		Children: e.opts.Children,
	})
	if err != nil {
		return fmt.Errorf("build hierarchy: %w", err)
	}
	e.root = root
	e.placeLocked()
	e.scheduleSettleLocked()
	return nil
}

// Reset places the cached hierarchy again. Placement is a pure function
// of the hierarchy, so this restores the initial layout exactly.
func (e *engine) Reset() { e.replay() }

// Relayout recomputes the placement, which for a deterministic layout is
// the same as [engine.Reset].
func (e *engine) Relayout() { e.replay() }

func (e *engine) replay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return
	}
	e.stopLocked()
	if e.root == nil {
		// Empty graphs settle with nothing placed. A graph whose
		// hierarchy failed to build stays as it is.
		if e.graph.NodeCount() == 0 {
			e.scheduleSettleLocked()
		}
		return
	}
	e.placeLocked()
	e.scheduleSettleLocked()
}

func (e *engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *engine) Snapshot() graph.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return graph.Layout{}
	}
	l := graph.Snapshot(e.graph)
	l.Engine = graph.EngineDendrogram
	if e.opts.Mode == ModeTree {
		l.Engine = graph.EngineTree
	}
	l.Orientation = string(e.opts.Orientation)
	l.Settled = true
	return l
}

func (e *engine) placeLocked() {
	dx, dy := canvasSize(e.opts.Orientation)
	if e.opts.Mode == ModeTree {
		tidy(e.root, dx, dy)
	} else {
		cluster(e.root, dx, dy)
	}
	applyOrientation(e.root, e.opts.Orientation)
	e.env.Debugf("placed hierarchy",
		"mode", e.opts.Mode,
		"orientation", e.opts.Orientation,
		"nodes", e.root.Count,
	)
}

func (e *engine) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *engine) scheduleSettleLocked() {
	e.cancel = e.env.Scheduler.Request(func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		e.env.Emit(layout.EventSettled)
	})
}
