package layout

import (
	"math"
	"sync"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// NewStatic returns the engine behind the "graph" mode: it normalizes the
// positions carried by the records into render space and computes nothing.
func NewStatic(env Env) Engine {
	return &staticEngine{env: env}
}

type staticEngine struct {
	mu     sync.Mutex
	env    Env
	graph  *graph.Graph
	cancel func()
}

func (e *staticEngine) Resync(g *graph.Graph) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.graph = g
	Normalize(g)
	e.scheduleSettleLocked()
	return nil
}

// Reset re-reads positions from the records, dropping anything carried
// over from a previous generation, and normalizes again.
func (e *staticEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return
	}
	e.stopLocked()
	for _, n := range e.graph.Nodes {
		n.X, n.Y = math.NaN(), math.NaN()
		n.VX, n.VY = 0, 0
		n.HasAngle = false
		if r := n.Record; r != nil {
			if r.X != nil {
				n.X = *r.X
			}
			if r.Y != nil {
				n.Y = *r.Y
			}
		}
	}
	Normalize(e.graph)
	e.scheduleSettleLocked()
}

func (e *staticEngine) Relayout() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return
	}
	e.stopLocked()
	e.scheduleSettleLocked()
}

func (e *staticEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

func (e *staticEngine) Snapshot() graph.Layout {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return graph.Layout{}
	}
	l := graph.Snapshot(e.graph)
	l.Engine = graph.EngineGraph
	l.Settled = true
	return l
}

func (e *staticEngine) stopLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *staticEngine) scheduleSettleLocked() {
	e.cancel = e.env.Scheduler.Request(func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		e.env.Emit(EventSettled)
	})
}
