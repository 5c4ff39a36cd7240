package layout

import (
	"github.com/charmbracelet/log"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// =============================================================================
// Engine Contract
// =============================================================================

// Engine computes node positions for a controller's graph.
//
// Engines write positions onto the graph handed to [Engine.Resync] and
// report progress through the [Env] notify hook. Implementations must be
// safe for concurrent use: lifecycle calls arrive from the controller while
// scheduled steps run on scheduler goroutines.
type Engine interface {
	// Resync installs a freshly parsed graph and starts a new layout.
	// Any in-flight work for the previous graph must be dropped first.
	// A structural error (say, tree layout over non-tree data) leaves
	// node positions untouched.
	Resync(g *graph.Graph) error

	// Reset re-seeds layout state for the current graph without a
	// reparse. Nodes keep the positions they have.
	Reset()

	// Relayout resumes or reheats computation on unchanged data.
	Relayout()

	// Stop halts asynchronous work where it stands. Positions already
	// written stay as they are. Stopping twice is a no-op.
	Stop()

	// Snapshot returns a consistent copy of the current positions.
	// Safe to call while the engine is stepping.
	Snapshot() graph.Layout
}

// Factory builds an engine bound to host hooks.
type Factory func(env Env) Engine

// Env gives engines access to host services. Controllers fill it in;
// tests construct it directly, usually around a [ManualScheduler].
type Env struct {
	// Scheduler queues asynchronous steps. Never nil when handed out
	// by a controller.
	Scheduler Scheduler

	// Notify reports lifecycle events back to the controller. May be
	// nil when an engine is driven directly.
	Notify func(Event)

	// Logger receives debug output. May be nil.
	Logger *log.Logger
}

// Emit forwards an event when a notify hook is installed.
func (e Env) Emit(ev Event) {
	if e.Notify != nil {
		e.Notify(ev)
	}
}

// Debugf logs through the env logger when one is installed.
func (e Env) Debugf(msg string, keyvals ...any) {
	if e.Logger != nil {
		e.Logger.Debug(msg, keyvals...)
	}
}

// =============================================================================
// Events and Render Requests
// =============================================================================

// Event is a lifecycle notification an engine sends to its controller.
type Event int

const (
	// EventTick signals that node positions changed and a render is due.
	EventTick Event = iota

	// EventSettled signals that the engine finished: positions are final
	// until the next lifecycle call.
	EventSettled
)

// String returns the event name for logs.
func (e Event) String() string {
	switch e {
	case EventTick:
		return "tick"
	case EventSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Renderer receives render requests when node positions change. The host
// decides what a render means: redraw a frame, push an update, or ignore.
type Renderer interface {
	RequestRender()
}

// RendererFunc adapts a plain function to the [Renderer] interface.
type RendererFunc func()

// RequestRender calls f.
func (f RendererFunc) RequestRender() { f() }
