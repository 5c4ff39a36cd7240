package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/config"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		refresh     bool
		engine      string
		orientation string
		root        int
		iterations  int
	)

	cmd := &cobra.Command{
		Use:   "layout [dataset.json]",
		Short: "Compute a layout from a graph dataset",
		Long: `Compute a layout from a graph dataset.

The layout command reads a dataset file (nodes plus edges) and computes
positions with the selected engine. The output is a layout.json file that
can be rendered to SVG/PNG/DOT using the 'visualize' command.

Force layouts run until the simulation settles or the iteration cap is
reached. Results are cached locally for faster subsequent runs.`,
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
			opts.Root = rootIndex(root)
			opts.DatasetPath = args[0]
			opts.Refresh = refresh
			return c.runLayout(cmd.Context(), cfg, args[0], opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")

	// Layout flags
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: graph, tree, dendrogram, force (default from config)")
	cmd.Flags().StringVar(&orientation, "orientation", "", "tree orientation: horizontal, vertical, radial")
	cmd.Flags().IntVar(&root, "root", -1, "root node index for tree engines (-1 auto-detects)")
	cmd.Flags().IntVarP(&iterations, "iterations", "i", 0, "force iteration cap (0 uses the default)")

	return cmd
}

// runLayout parses the dataset, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, cfg config.Config, input string, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	g, hash, _, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}

	opts.SetLayoutDefaults()
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.Engine))
	spinner.Start()

	layout, _, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, g, hash, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Nodes), len(layout.Edges), cacheHit)
	printNewline()
	printNextStep("Render", "graphmotion visualize "+outputPath)

	return nil
}
