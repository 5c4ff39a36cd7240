// Package cli implements the graphmotion command-line interface.
//
// This package provides commands for computing graph layouts from dataset
// files, rendering them as SVG/PNG/DOT artifacts, watching a live force
// simulation in the terminal, serving layouts over HTTP, and managing the
// local result cache. The CLI is built using cobra with charmbracelet/log
// for verbose output.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout from a dataset and write layout JSON
//   - render: Run the full dataset -> layout -> artifact pipeline
//   - visualize: Render artifacts from a previously computed layout
//   - watch: Animate the force simulation live in the terminal
//   - serve: Run the HTTP layout service
//   - cache: Inspect or clear the result cache
//   - events: Follow layout lifecycle events from the broker
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/buildinfo"
	"github.com/graphmotion/graphmotion/pkg/cache"
	"github.com/graphmotion/graphmotion/pkg/config"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/pipeline"
	"github.com/graphmotion/graphmotion/pkg/render"
)

// appName is the application name used for directories and display.
const appName = "graphmotion"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the config file location; empty uses
	// ~/.config/graphmotion/config.toml.
	ConfigPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "graphmotion",
		Short:        "Graphmotion lays out graphs for animated charts",
		Long:         `Graphmotion computes 2D positions for graph, tree, dendrogram, and force-directed layouts and renders them as SVG, PNG, or DOT artifacts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "config file (default ~/.config/graphmotion/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.eventsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads the configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.ConfigPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	store, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Namespace != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Namespace)
	}
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL, _ = cfg.Cache.TTLDuration()
	return runner, nil
}

// newCache builds the cache backend selected by the configuration.
// Backend failures for the local file cache degrade to no caching rather
// than failing the command.
func newCache(ctx context.Context, cc config.CacheConfig, noCache bool) (cache.Cache, error) {
	if noCache || cc.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	switch cc.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cc.RedisURL)
	case "mongo":
		return cache.NewMongoCache(ctx, cc.MongoURI, cc.MongoDatabase, "cache")
	default:
		dir, err := cc.ResolveDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutOptions seeds pipeline options from the configuration defaults.
// The configured orientation only applies to tree engines; carrying it
// on a force run would fragment the layout cache for no effect.
func layoutOptions(cfg config.Config) pipeline.Options {
	opts := pipeline.Options{
		Engine:     cfg.Layout.Engine,
		Iterations: cfg.Layout.Iterations,
		Scale:      cfg.Render.Scale,
	}
	if opts.Engine == graph.EngineTree || opts.Engine == graph.EngineDendrogram {
		opts.Orientation = cfg.Layout.Orientation
	}
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s, fallback string) []string {
	if s == "" {
		s = fallback
	}
	if s == "" {
		s = render.FormatSVG
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rootIndex converts the --root flag to the pipeline's pointer form,
// where nil means auto-detect.
func rootIndex(root int) *int {
	if root < 0 {
		return nil
	}
	return &root
}
