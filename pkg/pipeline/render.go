package pipeline

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/render"
)

// =============================================================================
// Artifact Generation
// =============================================================================

// RenderArtifacts generates output artifacts in the requested formats.
//
// Formats render concurrently. Each one runs its own Graphviz instance,
// so a slow PNG rasterization never delays the JSON artifact.
func RenderArtifacts(l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
		eg        errgroup.Group
	)
	for _, format := range opts.Formats {
		eg.Go(func() error {
			data, err := render.Render(l, format, opts.RenderOptions())
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
// This is useful when the layout was computed elsewhere (say, cached or
// produced by another process).
func RenderFromLayoutData(layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderArtifacts(parsed, opts)
}
