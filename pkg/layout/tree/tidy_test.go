package tree

import (
	"testing"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

func TestTidyPair(t *testing.T) {
	g := run(t, Options{Mode: ModeTree}, 2, []graph.Edge{{Source: 0, Target: 1}})
	wantAt(t, g.Nodes[0], -1, 0)
	wantAt(t, g.Nodes[1], 1, 0)
}

func TestTidyCentersParent(t *testing.T) {
	g := run(t, Options{Mode: ModeTree}, 3, []graph.Edge{
		{Source: 0, Target: 1}, {Source: 0, Target: 2},
	})
	wantAt(t, g.Nodes[0], -1, 0)
	wantAt(t, g.Nodes[2], 1, 0.5)
	wantAt(t, g.Nodes[1], 1, -0.5)
}

func TestTidySeparatesCousinSubtrees(t *testing.T) {
	// Two sibling subtrees with two leaves each. Cousins across the
	// subtree boundary get twice the sibling gap.
	edges := []graph.Edge{
		{Source: 0, Target: 1}, {Source: 0, Target: 2},
		{Source: 1, Target: 3}, {Source: 1, Target: 4},
		{Source: 2, Target: 5}, {Source: 2, Target: 6},
	}
	g := run(t, Options{Mode: ModeTree}, 7, edges)

	wantAt(t, g.Nodes[0], -1, 0)
	wantAt(t, g.Nodes[2], 0, 0.5)
	wantAt(t, g.Nodes[1], 0, -0.5)
	wantAt(t, g.Nodes[6], 1, 2.0/3)
	wantAt(t, g.Nodes[5], 1, 1.0/3)
	wantAt(t, g.Nodes[4], 1, -1.0/3)
	wantAt(t, g.Nodes[3], 1, -2.0/3)
}

func TestTidyDepthFollowsTreeDistance(t *testing.T) {
	// A shallow leaf keeps its own depth instead of dropping to the
	// deepest rail.
	edges := []graph.Edge{
		{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 2, Target: 3},
	}
	g := run(t, Options{Mode: ModeTree}, 4, edges)
	if !approx(g.Nodes[1].X, 0) {
		t.Errorf("depth-1 leaf at x = %v, want 0", g.Nodes[1].X)
	}
	if !approx(g.Nodes[3].X, 1) {
		t.Errorf("depth-2 leaf at x = %v, want 1", g.Nodes[3].X)
	}
}

func TestTidySingleNode(t *testing.T) {
	g := run(t, Options{Mode: ModeTree}, 1, nil)
	wantAt(t, g.Nodes[0], -1, 0)
}
