package hierarchy

import (
	"errors"
	"testing"

	"github.com/graphmotion/graphmotion/pkg/graph"
)

func mustParse(t *testing.T, n int, edges []graph.Edge) *graph.Graph {
	t.Helper()
	g, err := graph.Parse(make([]graph.Record, n), edges)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return g
}

func intp(v int) *int { return &v }

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		nodes   int
		edges   []graph.Edge
		opts    Options
		wantErr error
		check   func(t *testing.T, root *Node)
	}{
		{
			name:  "Chain",
			nodes: 4,
			edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 3}},
			check: func(t *testing.T, root *Node) {
				n := root
				for depth := 0; depth < 4; depth++ {
					if n.Depth != depth {
						t.Errorf("node %d: depth = %d, want %d", n.Data.Index, n.Depth, depth)
					}
					if n.Height != 3-depth {
						t.Errorf("node %d: height = %d, want %d", n.Data.Index, n.Height, 3-depth)
					}
					if n.Count != 1 {
						t.Errorf("node %d: count = %d, want 1", n.Data.Index, n.Count)
					}
					if len(n.Children) > 0 {
						n = n.Children[0]
					}
				}
			},
		},
		{
			name:  "StarCounts",
			nodes: 4,
			edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 0, Target: 3}},
			check: func(t *testing.T, root *Node) {
				if root.Count != 3 || root.Height != 1 {
					t.Errorf("root count/height = %d/%d, want 3/1", root.Count, root.Height)
				}
			},
		},
		{
			name:  "EqualHeightSiblingsByIndexDesc",
			nodes: 4,
			edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 0, Target: 3}},
			check: func(t *testing.T, root *Node) {
				got := childIndices(root)
				want := []int{3, 2, 1}
				for i := range want {
					if got[i] != want[i] {
						t.Fatalf("children = %v, want %v", got, want)
					}
				}
			},
		},
		{
			name:  "TallerSubtreeFirst",
			nodes: 4,
			// Node 1 is a leaf, node 2 has a child, so 2 sorts before 1
			// despite the lower index.
			edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 2, Target: 3}},
			check: func(t *testing.T, root *Node) {
				got := childIndices(root)
				if got[0] != 2 || got[1] != 1 {
					t.Fatalf("children = %v, want [2 1]", got)
				}
			},
		},
		{
			name:  "RootIsFirstWithoutIncoming",
			nodes: 3,
			edges: []graph.Edge{{Source: 2, Target: 0}, {Source: 2, Target: 1}},
			check: func(t *testing.T, root *Node) {
				if root.Data.Index != 2 {
					t.Errorf("root = %d, want 2", root.Data.Index)
				}
			},
		},
		{
			name:  "ExplicitRoot",
			nodes: 3,
			edges: []graph.Edge{{Source: 1, Target: 2}},
			opts:  Options{Root: intp(1)},
			check: func(t *testing.T, root *Node) {
				if root.Data.Index != 1 {
					t.Errorf("root = %d, want 1", root.Data.Index)
				}
				if root.Size() != 2 {
					t.Errorf("size = %d, want 2 (node 0 unreachable)", root.Size())
				}
			},
		},
		{
			name:    "RootOutOfRange",
			nodes:   2,
			opts:    Options{Root: intp(5)},
			wantErr: ErrBadRoot,
		},
		{
			name:    "DiamondIsNotTree",
			nodes:   4,
			edges:   []graph.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}, {Source: 1, Target: 3}, {Source: 2, Target: 3}},
			wantErr: ErrNotTree,
		},
		{
			name:    "CycleIsNotTree",
			nodes:   3,
			edges:   []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 2}, {Source: 2, Target: 1}},
			wantErr: ErrNotTree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.nodes, tt.edges)
			root, err := Build(g, tt.opts)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if tt.check != nil {
				tt.check(t, root)
			}
		})
	}
}

func childIndices(n *Node) []int {
	out := make([]int, len(n.Children))
	for i, c := range n.Children {
		out[i] = c.Data.Index
	}
	return out
}

func TestBuildEmptyGraph(t *testing.T) {
	g, _ := graph.Parse(nil, nil)
	if _, err := Build(g, Options{}); !errors.Is(err, ErrEmptyGraph) {
		t.Errorf("error = %v, want ErrEmptyGraph", err)
	}
}

func TestBuildCustomChildren(t *testing.T) {
	// Parent pointers stored in record meta instead of edges.
	g := mustParse(t, 3, nil)
	byParent := map[int][]int{0: {1, 2}}

	root, err := Build(g, Options{
		Children: func(n *graph.Node) []int { return byParent[n.Index] },
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if root.Size() != 3 {
		t.Errorf("size = %d, want 3", root.Size())
	}
	if got := childIndices(root); got[0] != 2 || got[1] != 1 {
		t.Errorf("children = %v, want [2 1]", got)
	}
}

func TestBuildCustomChildrenOutOfRange(t *testing.T) {
	g := mustParse(t, 2, nil)

	_, err := Build(g, Options{
		Children: func(n *graph.Node) []int {
			if n.Index == 0 {
				return []int{9}
			}
			return nil
		},
	})
	if !errors.Is(err, graph.ErrNodeReference) {
		t.Errorf("error = %v, want ErrNodeReference", err)
	}
}

func TestTraversalOrder(t *testing.T) {
	g := mustParse(t, 5, []graph.Edge{
		{Source: 0, Target: 1},
		{Source: 0, Target: 2},
		{Source: 1, Target: 3},
		{Source: 1, Target: 4},
	})

	root, err := Build(g, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Node 1 has height 1, node 2 height 0, so 1 comes first; under it
	// leaves 4 and 3 in descending index order.
	var pre []int
	root.Each(func(n *Node) { pre = append(pre, n.Data.Index) })
	wantPre := []int{0, 1, 4, 3, 2}
	for i := range wantPre {
		if pre[i] != wantPre[i] {
			t.Fatalf("pre-order = %v, want %v", pre, wantPre)
		}
	}

	var post []int
	root.EachAfter(func(n *Node) { post = append(post, n.Data.Index) })
	wantPost := []int{4, 3, 1, 2, 0}
	for i := range wantPost {
		if post[i] != wantPost[i] {
			t.Fatalf("post-order = %v, want %v", post, wantPost)
		}
	}

	leaves := root.Leaves()
	if len(leaves) != 3 {
		t.Fatalf("leaves = %d, want 3", len(leaves))
	}
	if leaves[0].Data.Index != 4 || leaves[1].Data.Index != 3 || leaves[2].Data.Index != 2 {
		t.Errorf("leaf order = [%d %d %d], want [4 3 2]",
			leaves[0].Data.Index, leaves[1].Data.Index, leaves[2].Data.Index)
	}
}
