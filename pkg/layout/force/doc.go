// Package force implements the force-directed layout engine: a
// deterministic velocity integration over the graph's nodes, shaped by
// composable forces.
//
// # Simulation Model
//
// A [Simulation] advances in discrete ticks. Each tick decays alpha
// toward its target, applies every installed [Force] in insertion
// order, then integrates damped velocities into positions. When alpha
// falls below AlphaMin the simulation parks. Nodes entering without a
// position are seeded on a phyllotaxis spiral; all randomness comes
// from a fixed-seed generator, so identical inputs produce identical
// layouts.
//
// # Forces
//
// [Center] recenters the mean position, [Link] turns edges into
// springs, [ManyBody] applies Barnes-Hut approximated charge, [Collide]
// separates overlapping circles, [X] and [Y] are positioning springs,
// and [Radial] shapes rings. Each force carries its standard tuning in
// its constructor and accepts per-node or per-edge overrides.
//
// # Spaces
//
// The simulation runs in its own coordinate space, where the default
// spring length is 30 and charge strength -30. The engine keeps that
// space on cloned nodes and, after every tick, publishes normalized
// copies onto the live graph, so observers always read render-space
// coordinates in [-1, 1] while the physics stays at its natural scale.
//
// # Engine
//
// [New] adapts a [Config] into the layout engine contract: resync seeds
// from carried coordinates, runs optional warm-up iterations, then
// steps once per scheduler frame until settled or stopped.
package force
