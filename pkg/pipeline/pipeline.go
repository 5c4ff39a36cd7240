// Package pipeline provides the core layout pipeline for Graphmotion.
//
// This package implements the complete parse → layout → render pipeline
// that can be used by CLI and server components. Centralizing this logic
// keeps caching behavior identical across all entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load a dataset and build the positional-index graph
//  2. Layout: Run a layout engine to convergence over the graph
//  3. Render: Generate artifacts in various formats (SVG, PNG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
// Every stage is cached under a key derived from the content hash of its
// input, so re-running a pipeline over unchanged data costs one cache
// read per stage.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    DatasetPath: "graph.json",
//	    Engine:      "force",
//	    Formats:     []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Parse only
//	g, hash, err := runner.Parse(ctx, opts)
//
//	// Layout with existing graph
//	layout, err := runner.ComputeLayout(ctx, g, hash, opts)
//
//	// Render with existing layout
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/graphmotion/graphmotion/pkg/cache"
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout/force"
	"github.com/graphmotion/graphmotion/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultEngine is the layout engine used when none is requested.
	DefaultEngine = graph.EngineForce

	// DefaultIterations caps synchronous layout stepping. The force
	// simulation's cooling schedule settles in roughly 300 ticks, so
	// the cap only bites on pathological inputs.
	DefaultIterations = 500

	// DefaultFormat is the artifact format used when none is requested.
	DefaultFormat = render.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one dataset source must be set; an inline
	// dataset wins over a path, a path wins over a hash.
	Dataset     *graph.Dataset `json:"dataset,omitempty"`      // inline dataset document
	DatasetPath string         `json:"dataset_path,omitempty"` // dataset JSON file on disk
	DatasetHash string         `json:"dataset_hash,omitempty"` // previously cached dataset
	Refresh     bool           `json:"refresh,omitempty"`      // recompute even on cache hits

	// Layout options
	Engine      string `json:"engine,omitempty"`
	Orientation string `json:"orientation,omitempty"` // tree and dendrogram engines only
	Root        *int   `json:"root,omitempty"`        // pinned root index, nil auto-detects
	Iterations  int    `json:"iterations,omitempty"`  // synchronous step cap, 0 means DefaultIterations

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`       // render-space units to points
	PixelRatio float64  `json:"pixel_ratio,omitempty"` // PNG raster density
	HideLabels bool     `json:"hide_labels,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Force  *force.Config `json:"-"` // force tuning override, bypasses the layout cache

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed graph.
	Graph *graph.Graph

	// DatasetHash is the content hash of the canonical dataset document.
	DatasetHash string

	// Layout contains the computed positions.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Iterations int // layout steps actually run, 0 on a cache hit
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit  bool // whether the dataset came from cache
	LayoutHit bool // whether the layout came from cache
	RenderHit bool // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateEngine checks that an engine name is valid.
func ValidateEngine(engine string) error {
	if !graph.ValidEngine(engine) {
		return apperrors.New(apperrors.ErrCodeInvalidEngine,
			"invalid engine: %q (must be one of: graph, tree, dendrogram, force)", engine)
	}
	return nil
}

// ValidateOrientation checks that an orientation name is valid.
// The empty string is allowed and means the engine default.
func ValidateOrientation(orientation string) error {
	if orientation != "" && !graph.ValidOrientation(orientation) {
		return apperrors.New(apperrors.ErrCodeInvalidOrientation,
			"invalid orientation: %q (must be one of: horizontal, vertical, radial)", orientation)
	}
	return nil
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !render.ValidFormat(format) {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Dataset == nil && o.DatasetPath == "" && o.DatasetHash == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"dataset, dataset_path, or dataset_hash is required")
	}
	if o.Dataset == nil && o.DatasetPath != "" {
		if err := apperrors.ValidateFilePath(o.DatasetPath); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	// Canonicalize the orientation so equivalent requests share cache
	// entries.
	if o.Orientation == "" && (o.Engine == graph.EngineTree || o.Engine == graph.EngineDendrogram) {
		o.Orientation = graph.OrientationHorizontal
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	return ValidateOrientation(o.Orientation)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = render.DefaultScale
	}
	if o.PixelRatio == 0 {
		o.PixelRatio = render.DefaultPixelRatio
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// RenderOptions converts pipeline options into render options.
func (o *Options) RenderOptions() render.Options {
	return render.Options{
		Scale:      o.Scale,
		HideLabels: o.HideLabels,
		PixelRatio: o.PixelRatio,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	root := -1
	if o.Root != nil {
		root = *o.Root
	}
	return cache.LayoutKeyOpts{
		Engine:      o.Engine,
		Orientation: o.Orientation,
		Root:        root,
		Iterations:  o.Iterations,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		PixelRatio: o.PixelRatio,
		HideLabels: o.HideLabels,
	}
}
