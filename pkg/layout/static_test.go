package layout

import (
	"testing"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

func staticSetup() (*Controller, *ManualScheduler, *countingRenderer) {
	sched := &ManualScheduler{}
	rend := &countingRenderer{}
	c := NewController(NewStatic, Options{Renderer: rend, Scheduler: sched})
	return c, sched, rend
}

func coordRecords(coords ...[2]float64) []graph.Record {
	records := make([]graph.Record, len(coords))
	for i, c := range coords {
		x, y := c[0], c[1]
		records[i].X, records[i].Y = &x, &y
	}
	return records
}

func TestStaticResyncNormalizes(t *testing.T) {
	c, sched, rend := staticSetup()

	err := c.Resync(coordRecords([2]float64{0, 0}, [2]float64{10, 5}), nil)
	if err != nil {
		t.Fatalf("Resync: %v", err)
	}

	nodes := c.Graph().Nodes
	if nodes[0].X != -1 || nodes[0].Y != -1 || nodes[1].X != 1 || nodes[1].Y != 1 {
		t.Errorf("normalized = (%v,%v) (%v,%v), want (-1,-1) (1,1)",
			nodes[0].X, nodes[0].Y, nodes[1].X, nodes[1].Y)
	}

	// The settle notification waits for the next frame.
	if c.State() != StateParsed {
		t.Errorf("state before frame = %v, want parsed", c.State())
	}
	if got := sched.Fire(); got != 1 {
		t.Fatalf("Fire = %d, want 1", got)
	}
	if c.State() != StateSettled {
		t.Errorf("state after frame = %v, want settled", c.State())
	}
	if rend.count() != 1 {
		t.Errorf("render requests = %d, want 1", rend.count())
	}
}

func TestStaticResetRestoresRecordPositions(t *testing.T) {
	c, sched, _ := staticSetup()

	if err := c.Resync(coordRecords([2]float64{0, 0}, [2]float64{4, 4}), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	sched.Fire()

	// Scribble over the computed positions, then reset.
	nodes := c.Graph().Nodes
	nodes[0].X, nodes[0].Y = 99, 99
	nodes[0].VX = 3

	if err := c.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if nodes[0].X != -1 || nodes[0].Y != -1 {
		t.Errorf("node 0 = (%v, %v), want (-1, -1) again", nodes[0].X, nodes[0].Y)
	}
	if nodes[0].VX != 0 {
		t.Errorf("node 0 vx = %v, want 0", nodes[0].VX)
	}

	sched.Fire()
	if c.State() != StateSettled {
		t.Errorf("state = %v, want settled", c.State())
	}
}

func TestStaticStopCancelsPendingFrame(t *testing.T) {
	c, sched, rend := staticSetup()

	if err := c.Resync(coordRecords([2]float64{0, 0}, [2]float64{1, 1}), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	before := []float64{c.Graph().Nodes[0].X, c.Graph().Nodes[0].Y}
	c.Stop()

	if got := sched.Fire(); got != 0 {
		t.Errorf("Fire after stop ran %d callbacks, want 0", got)
	}
	if c.State() != StateParsed {
		t.Errorf("state = %v, want parsed (settle was cancelled)", c.State())
	}
	if rend.count() != 0 {
		t.Errorf("render requests = %d, want 0", rend.count())
	}

	after := []float64{c.Graph().Nodes[0].X, c.Graph().Nodes[0].Y}
	if before[0] != after[0] || before[1] != after[1] {
		t.Error("stop must leave positions where they stand")
	}

	// Relayout picks the settle back up.
	if err := c.Relayout(); err != nil {
		t.Fatalf("Relayout: %v", err)
	}
	sched.Fire()
	if c.State() != StateSettled {
		t.Errorf("state after relayout = %v, want settled", c.State())
	}
}

func TestStaticSnapshot(t *testing.T) {
	c, sched, _ := staticSetup()

	if err := c.Resync(coordRecords([2]float64{0, 0}, [2]float64{2, 2}), nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}
	sched.Fire()

	l := c.Snapshot()
	if l.Engine != graph.EngineGraph {
		t.Errorf("engine = %q, want graph", l.Engine)
	}
	if !l.Settled {
		t.Error("static snapshots are always settled")
	}
	if len(l.Nodes) != 2 {
		t.Errorf("nodes = %d, want 2", len(l.Nodes))
	}
}

func TestStaticUnplacedNodesStayUnplaced(t *testing.T) {
	c, _, _ := staticSetup()

	// One positioned record, one without coordinates.
	x, y := 1.0, 1.0
	records := []graph.Record{{X: &x, Y: &y}, {}}
	if err := c.Resync(records, nil); err != nil {
		t.Fatalf("Resync: %v", err)
	}

	nodes := c.Graph().Nodes
	if !nodes[0].Placed() {
		t.Error("positioned record must produce a placed node")
	}
	if nodes[1].Placed() {
		t.Error("static engine must not invent positions")
	}
}
