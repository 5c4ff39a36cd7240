package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/config"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/pipeline"
)

// visualizeCommand creates the visualize command for rendering from a layout.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
		scale      float64
		pixelRatio float64
		hideLabels bool
	)

	cmd := &cobra.Command{
		Use:   "visualize [layout.json]",
		Short: "Render artifacts from a computed layout",
		Long: `Render artifacts from a computed layout.

The visualize command takes a layout.json file (produced by 'layout') and
renders it to SVG, PNG, or DOT format. The layout carries all positioning
information, so this step is purely about rendering.

Results are cached locally for faster subsequent runs.

Use 'render' as a shortcut to go directly from a dataset to visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Scale:      cfg.Render.Scale,
				Refresh:    refresh,
				PixelRatio: pixelRatio,
				HideLabels: hideLabels,
			}
			if scale > 0 {
				opts.Scale = scale
			}
			opts.Formats = parseFormats(formatsStr, cfg.Render.Format)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runVisualize(cmd.Context(), cfg, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "render-space units to points (0 uses the default)")
	cmd.Flags().Float64Var(&pixelRatio, "pixel-ratio", 0, "PNG raster density multiplier (0 uses the default)")
	cmd.Flags().BoolVar(&hideLabels, "hide-labels", false, "suppress node labels")

	return cmd
}

// runVisualize loads the layout and renders it.
func (c *CLI) runVisualize(ctx context.Context, cfg config.Config, input string, opts pipeline.Options, output string, noCache bool) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s layout...", layout.Engine))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		spinner.StopWithError("Visualization failed")
		return fmt.Errorf("visualize: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
		nodes:     len(layout.Nodes),
		edges:     len(layout.Edges),
		cacheHit:  cacheHit,
	})
}
