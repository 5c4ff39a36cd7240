package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphmotion/graphmotion/pkg/cache"
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it does not
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-stage TTLs when nonzero.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}
	obs := observability.Pipeline()

	// Stage 1: Parse
	source := sourceName(opts)
	parseStart := time.Now()
	obs.OnParseStart(ctx, source)
	g, hash, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		obs.OnParseComplete(ctx, source, 0, time.Since(parseStart), err)
		return nil, fmt.Errorf("parse: %w", err)
	}
	obs.OnParseComplete(ctx, source, len(g.Nodes), time.Since(parseStart), nil)
	result.Graph = g
	result.DatasetHash = hash
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.EdgeCount = len(g.Edges)
	result.CacheInfo.ParseHit = parseHit

	r.Logger.Info("parsed dataset",
		"nodes", len(g.Nodes),
		"edges", len(g.Edges),
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	obs.OnLayoutStart(ctx, opts.Engine, len(g.Nodes))
	l, steps, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, g, hash, opts)
	obs.OnLayoutComplete(ctx, opts.Engine, steps, time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Iterations = steps
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"engine", opts.Engine,
		"settled", l.Settled,
		"steps", steps,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	obs.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	obs.OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo loads the dataset and builds the graph, returning
// the dataset hash and cache hit info. Documents loaded from outside
// the cache are written through under their content hash, so later runs
// can refer to them by hash alone.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*graph.Graph, string, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	// Hash-only source: the cache is the document store.
	if opts.Dataset == nil && opts.DatasetPath == "" {
		key := r.Keyer.DatasetKey(opts.DatasetHash)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "dataset")
			return nil, "", false, apperrors.New(apperrors.ErrCodeNotFound,
				"dataset %s is not cached", opts.DatasetHash)
		}
		observability.Cache().OnCacheHit(ctx, "dataset")
		d, err := graph.UnmarshalDataset(data)
		if err != nil {
			return nil, "", false, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err,
				"decode cached dataset %s", opts.DatasetHash)
		}
		g, err := buildGraph(d)
		if err != nil {
			return nil, "", false, err
		}
		return g, opts.DatasetHash, true, nil
	}

	d, err := loadDataset(opts)
	if err != nil {
		return nil, "", false, err
	}
	hash, err := cache.HashJSON(d)
	if err != nil {
		return nil, "", false, apperrors.Wrap(apperrors.ErrCodeInvalidDataset, err, "hash dataset")
	}

	// Write the canonical document through. A failure is not fatal: the
	// run still has the document in hand, the next one just cannot find
	// it by hash.
	if data, err := graph.MarshalDataset(d); err == nil {
		_ = r.Cache.Set(ctx, r.Keyer.DatasetKey(hash), data, r.ttl(cache.TTLDataset))
		observability.Cache().OnCacheSet(ctx, "dataset", len(data))
	}

	g, err := buildGraph(d)
	if err != nil {
		return nil, "", false, err
	}
	return g, hash, false, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*graph.Graph, string, error) {
	g, hash, _, err := r.ParseWithCacheInfo(ctx, opts)
	return g, hash, err
}

// ComputeLayoutWithCacheInfo computes a layout with caching and returns
// the steps run and cache hit info. Custom force tuning bypasses the
// cache entirely since the tuning does not participate in the key.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, g *graph.Graph, datasetHash string, opts Options) (graph.Layout, int, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, 0, false, err
	}
	r.applyLogger(&opts)

	useCache := opts.Force == nil && datasetHash != ""
	key := r.Keyer.LayoutKey(datasetHash, opts.LayoutKeyOpts())

	if useCache && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return cached, 0, true, nil
			}
			// Corrupt entries fall through to recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l, steps, err := ComputeLayout(g, opts)
	if err != nil {
		return graph.Layout{}, 0, false, err
	}

	if useCache {
		if data, err := graph.MarshalLayout(l); err == nil {
			_ = r.Cache.Set(ctx, key, data, r.ttl(cache.TTLLayout))
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, steps, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, g *graph.Graph, datasetHash string, opts Options) (graph.Layout, error) {
	l, _, _, err := r.ComputeLayoutWithCacheInfo(ctx, g, datasetHash, opts)
	return l, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache.
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)
	if allCached {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
			} else {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				allCached = false
				break
			}
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := RenderArtifacts(l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, key, data, r.ttl(cache.TTLArtifact))
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// ttl picks the stage TTL, or the runner-wide override when set.
func (r *Runner) ttl(stage time.Duration) time.Duration {
	if r.TTL != 0 {
		return r.TTL
	}
	return stage
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
