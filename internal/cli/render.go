package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/config"
	"github.com/graphmotion/graphmotion/pkg/pipeline"
	"github.com/graphmotion/graphmotion/pkg/render"
)

// renderCommand creates the render command running the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output      string
		formatsStr  string
		noCache     bool
		refresh     bool
		engine      string
		orientation string
		root        int
		iterations  int
		scale       float64
		pixelRatio  float64
		hideLabels  bool
	)

	cmd := &cobra.Command{
		Use:   "render [dataset.json]",
		Short: "Compute a layout and render artifacts in one step",
		Long: `Compute a layout and render artifacts in one step.

The render command runs the full pipeline: it reads a dataset file,
computes positions with the selected engine, and renders the result to
one or more artifact formats. Use 'layout' and 'visualize' separately
when you want to inspect or reuse the intermediate layout.

Results are cached locally at every stage for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := layoutOptions(cfg)
			if engine != "" {
				opts.Engine = engine
			}
			if orientation != "" {
				opts.Orientation = orientation
			}
			if iterations > 0 {
				opts.Iterations = iterations
			}
			if scale > 0 {
				opts.Scale = scale
			}
			opts.Root = rootIndex(root)
			opts.DatasetPath = args[0]
			opts.Refresh = refresh
			opts.PixelRatio = pixelRatio
			opts.HideLabels = hideLabels
			opts.Formats = parseFormats(formatsStr, cfg.Render.Format)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: graph, tree, dendrogram, force (default from config)")
	cmd.Flags().StringVar(&orientation, "orientation", "", "tree orientation: horizontal, vertical, radial")
	cmd.Flags().IntVar(&root, "root", -1, "root node index for tree engines (-1 auto-detects)")
	cmd.Flags().IntVarP(&iterations, "iterations", "i", 0, "force iteration cap (0 uses the default)")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "render-space units to points (0 uses the default)")
	cmd.Flags().Float64Var(&pixelRatio, "pixel-ratio", 0, "PNG raster density multiplier (0 uses the default)")
	cmd.Flags().BoolVar(&hideLabels, "hide-labels", false, "suppress node labels")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, cfg config.Config, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     result.Stats.NodeCount,
		edges:     result.Stats.EdgeCount,
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte // rendered bytes keyed by format
	formats   []string          // requested formats, in order
	input     string            // input file the output path derives from
	output    string            // explicit output file or base path
	nodes     int
	edges     int
	cacheHit  bool
}

// writeArtifacts writes each rendered format to its own file and prints
// a summary. A single format goes to the explicit output path when one
// is given; multiple formats share a base path with per-format extensions.
func writeArtifacts(p artifactWriteParams) error {
	base := artifactBase(p.output, p.input)

	var files []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 {
			path = p.output
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		files = append(files, path)
	}

	printSuccess("Render complete")
	for _, f := range files {
		printFile(f)
	}
	printStats(p.nodes, p.edges, p.cacheHit)
	return nil
}

// artifactBase derives the output base path. An explicit output wins with
// any known format extension stripped; otherwise the input path loses its
// extension.
func artifactBase(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if render.ValidFormat(strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
