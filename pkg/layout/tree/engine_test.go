package tree

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/hierarchy"
	"github.com/graphmotion/graphmotion/pkg/layout"
)

// testGraph parses n fresh records wired by edges.
func testGraph(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	records := make([]graph.Record, n)
	for i := range records {
		records[i].Label = fmt.Sprintf("n%d", i)
	}
	g, err := graph.Parse(records, edges)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return g
}

// run resyncs a fresh engine over a new graph and returns the graph.
// Placement happens synchronously inside Resync.
func run(t *testing.T, opts Options, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g := testGraph(t, n, edges)
	eng := New(opts)(layout.Env{Scheduler: &layout.ManualScheduler{}})
	if err := eng.Resync(g); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	return g
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func wantAt(t *testing.T, n *graph.Node, x, y float64) {
	t.Helper()
	if !approx(n.X, x) || !approx(n.Y, y) {
		t.Errorf("node %d at (%v, %v), want (%v, %v)", n.Index, n.X, n.Y, x, y)
	}
}

func TestEngineSettlesAfterResync(t *testing.T) {
	sched := &layout.ManualScheduler{}
	var events []layout.Event
	eng := New(Options{})(layout.Env{
		Scheduler: sched,
		Notify:    func(ev layout.Event) { events = append(events, ev) },
	})

	if err := eng.Resync(testGraph(t, 2, []graph.Edge{{Source: 0, Target: 1}})); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("events before frame: %v", events)
	}
	if sched.Fire() != 1 {
		t.Fatal("expected one scheduled frame")
	}
	if len(events) != 1 || events[0] != layout.EventSettled {
		t.Fatalf("events = %v, want [settled]", events)
	}
}

func TestEngineRejectsNonTree(t *testing.T) {
	eng := New(Options{})(layout.Env{Scheduler: &layout.ManualScheduler{}})
	diamond := []graph.Edge{
		{Source: 0, Target: 1}, {Source: 0, Target: 2},
		{Source: 1, Target: 3}, {Source: 2, Target: 3},
	}
	err := eng.Resync(testGraph(t, 4, diamond))
	if !errors.Is(err, hierarchy.ErrNotTree) {
		t.Fatalf("err = %v, want ErrNotTree", err)
	}
	if got := eng.Snapshot(); len(got.Nodes) != 0 {
		t.Fatalf("placed %d nodes after failed resync", len(got.Nodes))
	}
}

func TestEngineEmptyGraphSettles(t *testing.T) {
	sched := &layout.ManualScheduler{}
	var events []layout.Event
	eng := New(Options{})(layout.Env{
		Scheduler: sched,
		Notify:    func(ev layout.Event) { events = append(events, ev) },
	})
	if err := eng.Resync(testGraph(t, 0, nil)); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	sched.Fire()
	if len(events) != 1 || events[0] != layout.EventSettled {
		t.Fatalf("events = %v, want [settled]", events)
	}
}

func TestEngineResetRestoresPlacement(t *testing.T) {
	sched := &layout.ManualScheduler{}
	eng := New(Options{})(layout.Env{Scheduler: sched})
	g := testGraph(t, 2, []graph.Edge{{Source: 0, Target: 1}})
	if err := eng.Resync(g); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	sched.Fire()

	g.Nodes[0].X, g.Nodes[0].Y = 7, 7
	eng.Reset()
	wantAt(t, g.Nodes[0], -1, 0)
	wantAt(t, g.Nodes[1], 1, 0)
	if sched.Fire() != 1 {
		t.Fatal("reset did not schedule a settle frame")
	}
}

func TestEngineStopCancelsSettle(t *testing.T) {
	sched := &layout.ManualScheduler{}
	var events []layout.Event
	eng := New(Options{})(layout.Env{
		Scheduler: sched,
		Notify:    func(ev layout.Event) { events = append(events, ev) },
	})
	if err := eng.Resync(testGraph(t, 1, nil)); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	eng.Stop()
	sched.Fire()
	if len(events) != 0 {
		t.Fatalf("events after stop = %v", events)
	}

	eng.Relayout()
	sched.Fire()
	if len(events) != 1 || events[0] != layout.EventSettled {
		t.Fatalf("events after relayout = %v, want [settled]", events)
	}
}

func TestEngineSnapshot(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantEngine string
		wantOrient string
	}{
		{"DendrogramDefault", Options{}, graph.EngineDendrogram, graph.OrientationHorizontal},
		{"TreeRadial", Options{Mode: ModeTree, Orientation: Radial}, graph.EngineTree, graph.OrientationRadial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := New(tt.opts)(layout.Env{Scheduler: &layout.ManualScheduler{}})
			if err := eng.Resync(testGraph(t, 2, []graph.Edge{{Source: 0, Target: 1}})); err != nil {
				t.Fatalf("Resync: %v", err)
			}
			l := eng.Snapshot()
			if l.Engine != tt.wantEngine || l.Orientation != tt.wantOrient {
				t.Errorf("snapshot %s/%s, want %s/%s", l.Engine, l.Orientation, tt.wantEngine, tt.wantOrient)
			}
			if !l.Settled {
				t.Error("snapshot not settled")
			}
			if len(l.Nodes) != 2 {
				t.Errorf("placed %d nodes, want 2", len(l.Nodes))
			}
		})
	}
}

func TestEngineLeavesUnreachableNodesAlone(t *testing.T) {
	root := 0
	g := testGraph(t, 3, []graph.Edge{{Source: 0, Target: 1}})
	eng := New(Options{Root: &root})(layout.Env{Scheduler: &layout.ManualScheduler{}})
	if err := eng.Resync(g); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	if !g.Nodes[0].Placed() || !g.Nodes[1].Placed() {
		t.Error("reachable nodes not placed")
	}
	if g.Nodes[2].Placed() {
		t.Errorf("unreachable node placed at (%v, %v)", g.Nodes[2].X, g.Nodes[2].Y)
	}
}
