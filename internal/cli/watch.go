package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout"
	"github.com/graphmotion/graphmotion/pkg/layout/engines"
)

// defaultWatchFPS is the frame rate the simulation is pumped at.
const defaultWatchFPS = 30

// watchCommand creates the watch command animating a layout in the terminal.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		engine      string
		orientation string
		root        int
		fps         int
	)

	cmd := &cobra.Command{
		Use:   "watch [dataset.json]",
		Short: "Animate the layout live in the terminal",
		Long: `Animate the layout live in the terminal.

The watch command reads a dataset file and steps the selected engine one
frame at a time, drawing node positions as they move. Force layouts show
the simulation cooling until it settles; tree engines settle on the first
frame.

Keys: r reheats the simulation, x resets it from the raw records, and
q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if engine == "" {
				engine = graph.EngineForce
			}
			return c.runWatch(cmd.Context(), args[0], engine, orientation, rootIndex(root), fps)
		},
	}

	cmd.Flags().StringVarP(&engine, "engine", "e", "", "layout engine: graph, tree, dendrogram, force (default force)")
	cmd.Flags().StringVar(&orientation, "orientation", "", "tree orientation: horizontal, vertical, radial")
	cmd.Flags().IntVar(&root, "root", -1, "root node index for tree engines (-1 auto-detects)")
	cmd.Flags().IntVar(&fps, "fps", defaultWatchFPS, "simulation frames per second")

	return cmd
}

// runWatch wires a controller to a manual scheduler and hands frame
// control to the bubbletea program.
func (c *CLI) runWatch(ctx context.Context, input, engine, orientation string, root *int, fps int) error {
	dataset, err := graph.ReadDatasetFile(input)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", input, err)
	}

	factory, err := engines.New(engine, engines.Options{
		Orientation: orientation,
		Root:        root,
	})
	if err != nil {
		return err
	}

	sched := &layout.ManualScheduler{}
	ctrl := layout.NewController(factory, layout.Options{Scheduler: sched})
	if err := ctrl.ResyncDataset(dataset); err != nil {
		return fmt.Errorf("start layout: %w", err)
	}
	defer ctrl.Stop()

	if fps <= 0 {
		fps = defaultWatchFPS
	}
	m := watchModel{
		ctrl:     ctrl,
		sched:    sched,
		input:    filepath.Base(input),
		engine:   engine,
		interval: time.Second / time.Duration(fps),
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if fm, ok := final.(watchModel); ok {
		snap := ctrl.Snapshot()
		if snap.Settled {
			printSuccess("Simulation settled after %d frames", fm.frames)
		} else {
			printInfo("Stopped after %d frames", fm.frames)
		}
		printStats(len(snap.Nodes), len(snap.Edges), false)
	}
	return nil
}
