package layout

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// ErrNoGraph is returned by lifecycle operations that need parsed data
// before any dataset was synced.
var ErrNoGraph = errors.New("no graph parsed")

// =============================================================================
// State
// =============================================================================

// State is the controller's position in the layout lifecycle.
type State int

const (
	// StateUnparsed means no dataset has been synced yet.
	StateUnparsed State = iota
	// StateParsed means a graph exists but the engine has not reported
	// any positions for it.
	StateParsed
	// StateComputing means the engine is stepping and positions change
	// between frames.
	StateComputing
	// StateSettled means the engine finished; positions are final until
	// the next lifecycle call.
	StateSettled
)

// String returns the state name for logs.
func (s State) String() string {
	switch s {
	case StateUnparsed:
		return "unparsed"
	case StateParsed:
		return "parsed"
	case StateComputing:
		return "computing"
	case StateSettled:
		return "settled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// =============================================================================
// Controller
// =============================================================================

// Options configures a [Controller].
type Options struct {
	// Renderer receives a render request after every layout mutation.
	// Nil drops the requests.
	Renderer Renderer

	// Scheduler drives asynchronous engine steps. Nil falls back to an
	// [IntervalScheduler] at [DefaultFrameInterval].
	Scheduler Scheduler

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.Scheduler == nil {
		o.Scheduler = NewIntervalScheduler(DefaultFrameInterval)
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// Controller owns one graph and one engine and drives the layout
// lifecycle. All methods are safe for concurrent use.
//
// Events raced out of a step that was cancelled moments earlier may still
// arrive; they cost at most one extra render request and never corrupt
// state, because the engine under the new generation reports its own
// events immediately after.
type Controller struct {
	mu     sync.Mutex // serializes lifecycle operations
	engine Engine
	graph  *graph.Graph
	opts   Options

	stateMu    sync.Mutex // guards state and generation
	state      State
	generation uuid.UUID
}

// NewController builds a controller around the engine the factory
// produces. The factory receives an [Env] wired to this controller.
func NewController(factory Factory, opts Options) *Controller {
	opts.setDefaults()
	c := &Controller{opts: opts}
	c.engine = factory(Env{
		Scheduler: opts.Scheduler,
		Notify:    c.handleEvent,
		Logger:    opts.Logger,
	})
	return c
}

// Engine returns the controller's engine, for hosts that need access to
// engine-specific state such as simulation temperature.
func (c *Controller) Engine() Engine { return c.engine }

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.state
}

// Generation identifies the current dataset. Each successful [Resync]
// produces a new generation; the zero UUID means no dataset yet.
func (c *Controller) Generation() uuid.UUID {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	return c.generation
}

// Graph returns the current graph, or nil before the first resync. The
// engine keeps writing positions into it while computing; use [Snapshot]
// for a consistent copy.
func (c *Controller) Graph() *graph.Graph {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.graph
}

// Snapshot returns a consistent copy of the current positions.
func (c *Controller) Snapshot() graph.Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graph == nil {
		return graph.Layout{}
	}
	return c.engine.Snapshot()
}

// =============================================================================
// Lifecycle Operations
// =============================================================================

// Resync replaces the controller's data: in-flight work stops, the records
// are parsed from scratch, and the engine starts a new layout.
//
// Nodes carry over state from the previous generation by index: a record
// with an explicit position keeps it, a node whose index had a finite
// position before inherits position and velocity, and everything else
// starts fresh. On a parse error the previous graph stays installed with
// the engine stopped; [Relayout] resumes it. On an engine error the new
// graph is installed and parsed but carries no computed positions.
func (c *Controller) Resync(records []graph.Record, edges []graph.Edge) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.engine.Stop()

	g, err := graph.Parse(records, edges)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}

	carryOver(g, c.graph)
	c.graph = g

	gen := uuid.New()
	c.stateMu.Lock()
	c.state = StateParsed
	c.generation = gen
	c.stateMu.Unlock()

	c.opts.Logger.Debug("resync", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "generation", gen)
	if err := c.engine.Resync(g); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// ResyncDataset is [Resync] for a decoded dataset.
func (c *Controller) ResyncDataset(d graph.Dataset) error {
	return c.Resync(d.Nodes, d.Edges)
}

// Reset re-seeds the engine for the current graph without a reparse.
// Nodes keep their positions; simulation state starts over.
func (c *Controller) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graph == nil {
		return ErrNoGraph
	}
	c.opts.Logger.Debug("reset")
	c.engine.Reset()
	return nil
}

// Relayout resumes or reheats computation on unchanged data.
func (c *Controller) Relayout() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.graph == nil {
		return ErrNoGraph
	}
	c.opts.Logger.Debug("relayout")
	c.engine.Relayout()
	return nil
}

// Stop halts asynchronous work where it stands. Positions stay as they
// are and the lifecycle state is left untouched, so a later [Relayout]
// picks up from the same place.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.Stop()
}

// =============================================================================
// Engine Callbacks
// =============================================================================

// handleEvent runs on scheduler goroutines and synchronously inside
// engine lifecycle calls; it must not take c.mu.
func (c *Controller) handleEvent(ev Event) {
	c.stateMu.Lock()
	switch ev {
	case EventTick:
		c.state = StateComputing
	case EventSettled:
		c.state = StateSettled
	}
	c.stateMu.Unlock()

	if c.opts.Renderer != nil {
		c.opts.Renderer.RequestRender()
	}
}

// carryOver seeds the next generation's nodes from the previous one.
// Explicit record positions win; otherwise a node inherits position and
// velocity from the node that held its index before.
func carryOver(next, prev *graph.Graph) {
	if prev == nil {
		return
	}
	for i, n := range next.Nodes {
		if n.Tag == graph.TagCarried {
			continue
		}
		if i >= len(prev.Nodes) {
			return
		}
		p := prev.Nodes[i]
		if !p.Placed() {
			continue
		}
		n.X, n.Y = p.X, p.Y
		n.VX, n.VY = p.VX, p.VY
		n.Tag = graph.TagCarried
	}
}
