package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/graphmotion/graphmotion/pkg/cache"
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout/force"
)

func ptr(v float64) *float64 { return &v }

// testDataset carries preset coordinates so the static engine has
// something to normalize; the other engines ignore them or use them as
// seeds.
func testDataset() *graph.Dataset {
	return &graph.Dataset{
		Nodes: []graph.Record{
			{Label: "root", X: ptr(0), Y: ptr(2)},
			{Label: "left", X: ptr(-2), Y: ptr(-2)},
			{Label: "right", X: ptr(2), Y: ptr(-2)},
		},
		Edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 0, Target: 2}},
	}
}

func testRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	return NewRunner(c, nil, log.New(io.Discard))
}

func TestRunnerExecute(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	opts := Options{
		Dataset: testDataset(),
		Engine:  graph.EngineGraph,
		Formats: []string{"dot", "json"},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.DatasetHash == "" {
		t.Error("Execute() should report the dataset hash")
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Execute() stats = %d nodes %d edges, want 3/2",
			result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if len(result.Layout.Nodes) != 3 {
		t.Errorf("Execute() layout has %d nodes, want 3", len(result.Layout.Nodes))
	}
	if _, ok := result.Artifacts["dot"]; !ok {
		t.Error("Execute() missing dot artifact")
	}
	if _, ok := result.Artifacts["json"]; !ok {
		t.Error("Execute() missing json artifact")
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("First run should not hit the cache")
	}
}

func TestRunnerExecuteCachesStages(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	opts := Options{
		Dataset: testDataset(),
		Engine:  graph.EngineGraph,
		Formats: []string{"json"},
	}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("First Execute() error: %v", err)
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute() error: %v", err)
	}
	if !result.CacheInfo.LayoutHit {
		t.Error("Second run should hit the layout cache")
	}
	if !result.CacheInfo.RenderHit {
		t.Error("Second run should hit the render cache")
	}
	if result.Stats.Iterations != 0 {
		t.Errorf("Cached layout should report 0 steps, got %d", result.Stats.Iterations)
	}
}

func TestRunnerDatasetHashRoundTrip(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{
		Dataset: testDataset(),
		Engine:  graph.EngineGraph,
		Formats: []string{"json"},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	// Re-run against the cached document by hash only.
	g, hash, hit, err := r.ParseWithCacheInfo(ctx, Options{DatasetHash: first.DatasetHash})
	if err != nil {
		t.Fatalf("ParseWithCacheInfo() error: %v", err)
	}
	if !hit {
		t.Error("Hash source should report a cache hit")
	}
	if hash != first.DatasetHash {
		t.Errorf("Hash = %s, want %s", hash, first.DatasetHash)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("Parsed graph has %d nodes, want 3", len(g.Nodes))
	}
}

func TestRunnerDatasetHashMiss(t *testing.T) {
	r := testRunner(t)
	defer r.Close()

	_, _, _, err := r.ParseWithCacheInfo(context.Background(), Options{DatasetHash: "nope"})
	if err == nil {
		t.Fatal("Unknown dataset hash should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Error code = %v, want NOT_FOUND", apperrors.GetCode(err))
	}
}

func TestRunnerRefreshRecomputes(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	opts := Options{
		Dataset: testDataset(),
		Engine:  graph.EngineGraph,
		Formats: []string{"json"},
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("First Execute() error: %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Refresh Execute() error: %v", err)
	}
	if result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Error("Refresh run should bypass the cache")
	}
}

func TestRunnerForceBypassesLayoutCache(t *testing.T) {
	r := testRunner(t)
	defer r.Close()
	ctx := context.Background()

	cfg := force.DefaultConfig()
	opts := Options{
		Dataset:    testDataset(),
		Engine:     graph.EngineForce,
		Iterations: 50,
		Force:      &cfg,
		Formats:    []string{"json"},
	}

	for i := 0; i < 2; i++ {
		result, err := r.Execute(ctx, opts)
		if err != nil {
			t.Fatalf("Execute() #%d error: %v", i+1, err)
		}
		if result.CacheInfo.LayoutHit {
			t.Errorf("Run #%d with custom force tuning should not hit the layout cache", i+1)
		}
		if result.Stats.Iterations == 0 {
			t.Errorf("Run #%d should report layout steps", i+1)
		}
	}
}

func TestComputeLayoutTreeSettles(t *testing.T) {
	g, err := testDataset().Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	l, steps, err := ComputeLayout(g, Options{Engine: graph.EngineTree})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if !l.Settled {
		t.Error("Tree layout should settle")
	}
	if l.Engine != graph.EngineTree {
		t.Errorf("Layout engine = %q, want tree", l.Engine)
	}
	if steps == 0 {
		t.Error("ComputeLayout() should report steps for a fresh run")
	}
}

func TestComputeLayoutForceSettles(t *testing.T) {
	g, err := testDataset().Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	l, steps, err := ComputeLayout(g, Options{Engine: graph.EngineForce})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	if !l.Settled {
		t.Errorf("Force layout should settle within %d steps, ran %d", DefaultIterations, steps)
	}
	for _, n := range l.Nodes {
		if n.X < -1.0001 || n.X > 1.0001 || n.Y < -1.0001 || n.Y > 1.0001 {
			t.Errorf("Node %d at (%v,%v) outside render space", n.Index, n.X, n.Y)
		}
	}
}

func TestComputeLayoutRejectsCycles(t *testing.T) {
	d := graph.Dataset{
		Nodes: []graph.Record{{Label: "a"}, {Label: "b"}},
		Edges: []graph.Edge{{Source: 0, Target: 1}, {Source: 1, Target: 0}},
	}
	g, err := d.Parse()
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	_, _, err = ComputeLayout(g, Options{Engine: graph.EngineTree})
	if err == nil {
		t.Fatal("Tree layout over cyclic data should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidLayout) {
		t.Errorf("Error code = %v, want INVALID_LAYOUT", apperrors.GetCode(err))
	}
}
