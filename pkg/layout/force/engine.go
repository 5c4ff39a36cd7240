package force

import (
	"math"
	"sync"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout"
)

// New returns a factory for the force engine. The zero Config installs
// no forces; start from [DefaultConfig].
func New(cfg Config) layout.Factory {
	return func(env layout.Env) layout.Engine {
		return &engine{cfg: cfg, env: env}
	}
}

// engine drives a Simulation behind the frame scheduler. The simulation
// runs in its own coordinate space on cloned nodes; after every tick the
// clone positions are copied onto the live graph and normalized into
// render space, so readers always see [-1, 1] coordinates while the
// springs keep their natural scale.
//
// Events are emitted only from scheduled callbacks with no lock held,
// so a renderer may call back into Snapshot freely.
type engine struct {
	mu      sync.Mutex
	cfg     Config
	env     layout.Env
	graph   *graph.Graph
	sim     *Simulation
	clones  []*graph.Node
	cancel  func()
	running bool
	settled bool
}

// Resync seeds a fresh simulation from the graph's current coordinates:
// carried nodes keep their position and velocity, fresh nodes start on
// the phyllotaxis spiral. Initial iterations run synchronously, then
// stepping resumes per [Config.AutoRestart].
func (e *engine) Resync(g *graph.Graph) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
	e.graph = g
	e.seedFromGraphLocked()
	e.warmStartLocked(e.cfg.AutoRestart)
	return nil
}

// Reset discards all carried state, reseeds from the records alone, and
// restarts the simulation.
func (e *engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.graph == nil {
		return
	}
	e.stopLocked()
	e.seedFromRecordsLocked()
	e.warmStartLocked(true)
}

// Relayout reheats the simulation without touching positions, letting
// the layout reorganize from where it stands.
func (e *engine) Relayout() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sim == nil {
		return
	}
	e.stopLocked()
	e.sim.Alpha = 1
	e.settled = false
	e.scheduleStepLocked()
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
	l.Engine = graph.EngineForce
	l.Settled = e.settled
	return l
}

// =============================================================================
// Seeding
// =============================================================================

// seedFromGraphLocked clones the live nodes as they stand, so positions
// and velocities carried over a resync keep moving seamlessly.
func (e *engine) seedFromGraphLocked() {
	clones := make([]*graph.Node, len(e.graph.Nodes))
	for i, n := range e.graph.Nodes {
		c := &graph.Node{Index: n.Index, Tag: n.Tag, Record: n.Record}
		c.X, c.Y = n.X, n.Y
		c.VX, c.VY = n.VX, n.VY
		clones[i] = c
	}
	e.startSimLocked(clones)
}

// seedFromRecordsLocked rebuilds the clones from record positions alone,
// with zero velocity. Nodes without a record position start unplaced and
// get spiraled by the simulation.
func (e *engine) seedFromRecordsLocked() {
	clones := make([]*graph.Node, len(e.graph.Nodes))
	for i, n := range e.graph.Nodes {
		c := &graph.Node{Index: n.Index, Tag: n.Tag, Record: n.Record}
		c.X, c.Y = math.NaN(), math.NaN()
		if r := n.Record; r != nil {
			if r.X != nil {
				c.X = *r.X
			}
			if r.Y != nil {
				c.Y = *r.Y
			}
		}
		clones[i] = c
	}
	e.startSimLocked(clones)
}

func (e *engine) startSimLocked(clones []*graph.Node) {
	e.clones = clones
	e.sim = NewSimulation(clones)
	e.settled = false
	e.installForcesLocked()
}

// installForcesLocked copies each configured force into the simulation.
// Copies keep the shared Config reusable across engines; Initialize
// rebuilds all per-node state. Installation order is fixed so runs are
// reproducible.
func (e *engine) installForcesLocked() {
	if f := e.cfg.Center; f != nil {
		c := *f
		e.sim.AddForce("center", &c)
	}
	if f := e.cfg.Collide; f != nil {
		c := *f
		e.sim.AddForce("collide", &c)
	}
	if f := e.cfg.Link; f != nil {
		c := *f
		c.edges = append([]graph.Edge(nil), e.graph.Edges...)
		e.sim.AddForce("link", &c)
	}
	if f := e.cfg.ManyBody; f != nil {
		c := *f
		e.sim.AddForce("manyBody", &c)
	}
	if f := e.cfg.X; f != nil {
		c := *f
		e.sim.AddForce("x", &c)
	}
	if f := e.cfg.Y; f != nil {
		c := *f
		e.sim.AddForce("y", &c)
	}
	if f := e.cfg.Radial; f != nil {
		c := *f
		e.sim.AddForce("radial", &c)
	}
}

// =============================================================================
// Stepping
// =============================================================================

// warmStartLocked runs the synchronous iterations, publishes the result,
// and hands off to the frame loop: asynchronous stepping when restart is
// set, a single settle frame otherwise.
func (e *engine) warmStartLocked(restart bool) {
	if n := e.cfg.InitialIterations; n > 0 {
		e.sim.Tick(n)
	}
	e.publishLocked()
	e.env.Debugf("force layout seeded",
		"nodes", e.graph.NodeCount(),
		"edges", e.graph.EdgeCount(),
		"warm", e.cfg.InitialIterations,
		"restart", restart,
	)
	if restart {
		e.scheduleStepLocked()
	} else {
		e.scheduleSettleLocked()
	}
}

func (e *engine) scheduleStepLocked() {
	e.running = true
	e.cancel = e.env.Scheduler.Request(e.step)
}

// step is the frame callback: one tick, publish, reschedule. The running
// flag drops late frames delivered after a stop.
func (e *engine) step() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	active := e.sim.Step()
	e.publishLocked()
	if active {
		e.cancel = e.env.Scheduler.Request(e.step)
	} else {
		e.cancel = nil
		e.running = false
		e.settled = true
	}
	e.mu.Unlock()

	e.env.Emit(layout.EventTick)
	if !active {
		e.env.Emit(layout.EventSettled)
	}
}

// publishLocked copies simulation coordinates onto the live graph and
// normalizes them into render space. The clones keep their own scale.
func (e *engine) publishLocked() {
	for i, c := range e.clones {
		n := e.graph.Nodes[i]
		n.X, n.Y = c.X, c.Y
		n.VX, n.VY = c.VX, c.VY
		n.Angle, n.HasAngle = 0, false
	}
	layout.Normalize(e.graph)
}

func (e *engine) stopLocked() {
	e.running = false
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

func (e *engine) scheduleSettleLocked() {
	e.settled = true
	e.cancel = e.env.Scheduler.Request(func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		e.env.Emit(layout.EventSettled)
	})
}
