package layout

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// recordingEngine captures lifecycle calls and hands tests the env it was
// built with, so they can emit events as an engine would.
type recordingEngine struct {
	mu        sync.Mutex
	env       Env
	graph     *graph.Graph
	calls     []string
	resyncErr error
}

func (e *recordingEngine) record(call string) {
	e.mu.Lock()
	e.calls = append(e.calls, call)
	e.mu.Unlock()
}

func (e *recordingEngine) Resync(g *graph.Graph) error {
	e.record("resync")
	e.graph = g
	return e.resyncErr
}

func (e *recordingEngine) Reset()    { e.record("reset") }
func (e *recordingEngine) Relayout() { e.record("relayout") }
func (e *recordingEngine) Stop()     { e.record("stop") }

func (e *recordingEngine) Snapshot() graph.Layout {
	if e.graph == nil {
		return graph.Layout{}
	}
	return graph.Snapshot(e.graph)
}

func (e *recordingEngine) callList() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}

// countingRenderer counts render requests.
type countingRenderer struct {
	mu sync.Mutex
	n  int
}

func (r *countingRenderer) RequestRender() {
	r.mu.Lock()
	r.n++
	r.mu.Unlock()
}

func (r *countingRenderer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

func newTestController() (*Controller, *recordingEngine, *countingRenderer) {
	eng := &recordingEngine{}
	rend := &countingRenderer{}
	c := NewController(func(env Env) Engine {
		eng.env = env
		return eng
	}, Options{Renderer: rend, Scheduler: &ManualScheduler{}})
	return c, eng, rend
}

func TestControllerResync(t *testing.T) {
	c, eng, _ := newTestController()

	if c.State() != StateUnparsed {
		t.Fatalf("initial state = %v, want unparsed", c.State())
	}
	if c.Generation() != uuid.Nil {
		t.Fatal("initial generation should be zero")
	}

	err := c.Resync(make([]graph.Record, 3), []graph.Edge{{Source: 0, Target: 1}})
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	if c.State() != StateParsed {
		t.Errorf("state = %v, want parsed", c.State())
	}
	gen := c.Generation()
	if gen == uuid.Nil {
		t.Error("generation should be set after resync")
	}
	if got := eng.callList(); len(got) != 2 || got[0] != "stop" || got[1] != "resync" {
		t.Errorf("calls = %v, want [stop resync]", got)
	}
	if eng.graph == nil || eng.graph.NodeCount() != 3 {
		t.Error("engine should receive the parsed graph")
	}

	// A second resync produces a fresh generation.
	if err := c.Resync(make([]graph.Record, 1), nil); err != nil {
		t.Fatalf("second Resync: %v", err)
	}
	if c.Generation() == gen {
		t.Error("generation should change on every resync")
	}
}

func TestControllerResyncParseError(t *testing.T) {
	c, eng, _ := newTestController()

	if err := c.Resync(make([]graph.Record, 2), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	gen := c.Generation()
	prev := c.Graph()

	err := c.Resync(make([]graph.Record, 1), []graph.Edge{{Source: 0, Target: 7}})
	if !errors.Is(err, graph.ErrNodeReference) {
		t.Fatalf("error = %v, want ErrNodeReference", err)
	}

	if c.Graph() != prev {
		t.Error("failed resync must keep the previous graph")
	}
	if c.Generation() != gen {
		t.Error("failed resync must keep the previous generation")
	}
	// The engine was stopped before parsing; the last call reflects that.
	calls := eng.callList()
	if calls[len(calls)-1] != "stop" {
		t.Errorf("last engine call = %q, want stop", calls[len(calls)-1])
	}
}

func TestControllerCarryOver(t *testing.T) {
	c, eng, _ := newTestController()

	if err := c.Resync(make([]graph.Record, 2), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	// Simulate an engine writing settled positions.
	eng.graph.Nodes[0].X, eng.graph.Nodes[0].Y = 0.5, -0.5
	eng.graph.Nodes[0].VX, eng.graph.Nodes[0].VY = 0.1, 0.2
	eng.graph.Nodes[1].X, eng.graph.Nodes[1].Y = -0.25, 0.75

	// Same first index, explicit position on the second, and a third
	// node the previous generation never saw.
	x, y := 1.0, 1.0
	records := []graph.Record{{}, {X: &x, Y: &y}, {}}
	if err := c.Resync(records, nil); err != nil {
		t.Fatalf("second Resync: %v", err)
	}

	nodes := c.Graph().Nodes

	if nodes[0].Tag != graph.TagCarried {
		t.Errorf("node 0 tag = %v, want carried", nodes[0].Tag)
	}
	if nodes[0].X != 0.5 || nodes[0].Y != -0.5 {
		t.Errorf("node 0 = (%v, %v), want carried position (0.5, -0.5)", nodes[0].X, nodes[0].Y)
	}
	if nodes[0].VX != 0.1 || nodes[0].VY != 0.2 {
		t.Errorf("node 0 velocity = (%v, %v), want carried (0.1, 0.2)", nodes[0].VX, nodes[0].VY)
	}

	if nodes[1].Tag != graph.TagCarried {
		t.Errorf("node 1 tag = %v, want carried", nodes[1].Tag)
	}
	if nodes[1].X != 1 || nodes[1].Y != 1 {
		t.Errorf("node 1 = (%v, %v), explicit record position must win", nodes[1].X, nodes[1].Y)
	}

	if nodes[2].Tag != graph.TagFresh {
		t.Errorf("node 2 tag = %v, want fresh", nodes[2].Tag)
	}
	if nodes[2].Placed() {
		t.Error("node 2 should start unplaced")
	}
}

func TestControllerLifecycleWithoutGraph(t *testing.T) {
	c, _, _ := newTestController()

	if err := c.Reset(); !errors.Is(err, ErrNoGraph) {
		t.Errorf("Reset error = %v, want ErrNoGraph", err)
	}
	if err := c.Relayout(); !errors.Is(err, ErrNoGraph) {
		t.Errorf("Relayout error = %v, want ErrNoGraph", err)
	}
	// Stop before any data is a no-op, not a panic.
	c.Stop()
}

func TestControllerForwardsLifecycle(t *testing.T) {
	c, eng, _ := newTestController()
	if err := c.Resync(make([]graph.Record, 1), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := c.Relayout(); err != nil {
		t.Fatalf("Relayout: %v", err)
	}
	c.Stop()

	got := eng.callList()
	want := []string{"stop", "resync", "reset", "relayout", "stop"}
	if len(got) != len(want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("calls = %v, want %v", got, want)
		}
	}
}

func TestControllerEvents(t *testing.T) {
	c, eng, rend := newTestController()
	if err := c.Resync(make([]graph.Record, 1), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	eng.env.Emit(EventTick)
	if c.State() != StateComputing {
		t.Errorf("state after tick = %v, want computing", c.State())
	}

	eng.env.Emit(EventTick)
	eng.env.Emit(EventSettled)
	if c.State() != StateSettled {
		t.Errorf("state after settle = %v, want settled", c.State())
	}

	if got := rend.count(); got != 3 {
		t.Errorf("render requests = %d, want 3 (one per event)", got)
	}
}

func TestControllerResyncEngineError(t *testing.T) {
	c, eng, _ := newTestController()
	eng.resyncErr = errors.New("not a tree")

	err := c.Resync(make([]graph.Record, 2), nil)
	if err == nil {
		t.Fatal("expected engine error to propagate")
	}

	// Parsing succeeded, so the new graph is installed even though the
	// engine rejected it.
	if c.Graph() == nil || c.Graph().NodeCount() != 2 {
		t.Error("parsed graph should be installed despite the engine error")
	}
	if c.State() != StateParsed {
		t.Errorf("state = %v, want parsed", c.State())
	}
}

func TestControllerSnapshotEmpty(t *testing.T) {
	c, _, _ := newTestController()
	l := c.Snapshot()
	if len(l.Nodes) != 0 {
		t.Errorf("snapshot of empty controller has %d nodes", len(l.Nodes))
	}
}

func TestStateString(t *testing.T) {
	names := map[State]string{
		StateUnparsed:  "unparsed",
		StateParsed:    "parsed",
		StateComputing: "computing",
		StateSettled:   "settled",
		State(9):       "state(9)",
	}
	for s, want := range names {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
