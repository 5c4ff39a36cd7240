package force

import (
	"math"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

// =============================================================================
// Force Contract
// =============================================================================

// Force is one behavior applied to the simulation's nodes every tick.
// Implementations adjust velocities (or, for centering, positions).
type Force interface {
	// Initialize binds the force to the simulation's nodes and its
	// random source. The simulation calls it when the force is added.
	Initialize(nodes []*graph.Node, random func() float64)

	// Apply runs one tick at the given alpha.
	Apply(alpha float64)
}

// =============================================================================
// Simulation
// =============================================================================

// Phyllotaxis constants for seeding nodes without a position.
const initialRadius = 10

var initialAngle = math.Pi * (3 - math.Sqrt(5))

// Simulation integrates node velocities over discrete ticks, cooling
// from Alpha toward AlphaTarget until AlphaMin parks it. The tuning
// fields may be adjusted between ticks; the zero value is not usable,
// construct with [NewSimulation].
//
// The simulation owns no locking. Callers serialize access; the engine
// in this package does so behind its frame scheduler.
type Simulation struct {
	Alpha         float64
	AlphaMin      float64
	AlphaDecay    float64
	AlphaTarget   float64
	VelocityDecay float64

	nodes  []*graph.Node
	random *lcg
	names  []string
	forces map[string]Force
}

// NewSimulation seeds a simulation over nodes. Nodes without a finite
// position are placed on a phyllotaxis spiral so they start spread
// around the origin; NaN velocities are zeroed.
func NewSimulation(nodes []*graph.Node) *Simulation {
	s := &Simulation{
		Alpha:         1,
		AlphaMin:      0.001,
		AlphaDecay:    1 - math.Pow(0.001, 1.0/300),
		AlphaTarget:   0,
		VelocityDecay: 0.6,
		nodes:         nodes,
		random:        newLCG(),
		forces:        make(map[string]Force),
	}
	for i, n := range nodes {
		if math.IsNaN(n.X) || math.IsNaN(n.Y) {
			radius := initialRadius * math.Sqrt(0.5+float64(i))
			angle := float64(i) * initialAngle
			n.X = radius * math.Cos(angle)
			n.Y = radius * math.Sin(angle)
		}
		if math.IsNaN(n.VX) || math.IsNaN(n.VY) {
			n.VX, n.VY = 0, 0
		}
	}
	return s
}

// Nodes returns the simulated nodes. Positions are in simulation space,
// not render space.
func (s *Simulation) Nodes() []*graph.Node { return s.nodes }

// AddForce installs f under name and initializes it. Forces apply in
// insertion order; reusing a name replaces the force in place.
func (s *Simulation) AddForce(name string, f Force) {
	if _, ok := s.forces[name]; !ok {
		s.names = append(s.names, name)
	}
	s.forces[name] = f
	f.Initialize(s.nodes, s.random.Float64)
}

// Force returns the force installed under name, or nil.
func (s *Simulation) Force(name string) Force { return s.forces[name] }

// RemoveForce uninstalls name.
func (s *Simulation) RemoveForce(name string) {
	if _, ok := s.forces[name]; !ok {
		return
	}
	delete(s.forces, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
}

// Step advances one tick: decay alpha, apply every force, then integrate
// damped velocities into positions. It reports whether the simulation is
// still hot (alpha has not dropped below AlphaMin).
func (s *Simulation) Step() bool {
	s.Alpha += (s.AlphaTarget - s.Alpha) * s.AlphaDecay
	for _, name := range s.names {
		s.forces[name].Apply(s.Alpha)
	}
	for _, n := range s.nodes {
		n.VX *= s.VelocityDecay
		n.X += n.VX
		n.VY *= s.VelocityDecay
		n.Y += n.VY
	}
	return s.Alpha >= s.AlphaMin
}

// Tick advances n ticks synchronously.
func (s *Simulation) Tick(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}
