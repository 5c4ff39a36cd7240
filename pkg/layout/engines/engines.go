// Package engines is the catalog of selectable layout engines.
//
// This package exists to break import cycles: the engine packages
// (tree, force) import pkg/layout, so pkg/layout cannot import them
// back. Consumers that resolve engines by wire name import this package
// instead.
//
// Usage:
//
//	factory, err := engines.New(graph.EngineForce, engines.Options{})
//	if err != nil {
//		return err
//	}
//	ctrl := layout.NewController(factory, layout.Options{})
package engines

import (
	"errors"
	"fmt"

	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout"
	"github.com/graphmotion/graphmotion/pkg/layout/force"
	"github.com/graphmotion/graphmotion/pkg/layout/tree"
)

var (
	// ErrUnknownEngine is returned by [New] for a name outside the catalog.
	ErrUnknownEngine = errors.New("unknown layout engine")

	// ErrUnknownOrientation is returned by [New] for an invalid orientation.
	ErrUnknownOrientation = errors.New("unknown tree orientation")
)

// Engine describes one selectable layout engine.
type Engine struct {
	// Name is the wire identifier, shared with serialized layouts.
	Name string

	// Description is a one-line summary for CLI listings.
	Description string

	// New builds a factory honoring opts. Engines ignore options that
	// do not apply to them.
	New func(opts Options) layout.Factory
}

// Options carries the per-engine knobs a caller can set when resolving
// by name.
type Options struct {
	// Orientation applies to the tree and dendrogram engines; empty
	// means horizontal.
	Orientation string

	// Root pins the hierarchy root to a node index; nil auto-detects
	// the first node without an incoming edge.
	Root *int

	// Force overrides the force configuration; nil means
	// [force.DefaultConfig].
	Force *force.Config
}

// All is the canonical engine list in presentation order.
var All = []*Engine{Graph, Tree, Dendrogram, Force}

// Graph renders the positions carried by the records, normalized and
// otherwise untouched.
var Graph = &Engine{
	Name:        graph.EngineGraph,
	Description: "record positions, normalized into render space",
	New: func(Options) layout.Factory {
		return layout.NewStatic
	},
}

// Tree is the tidy tree: compact subtrees, depth follows tree distance.
var Tree = &Engine{
	Name:        graph.EngineTree,
	Description: "tidy tree with compact subtrees",
	New: func(opts Options) layout.Factory {
		return tree.New(tree.Options{
			Mode:        tree.ModeTree,
			Orientation: tree.Orientation(opts.Orientation),
			Root:        opts.Root,
		})
	},
}

// Dendrogram aligns all leaves on one rail, internal nodes centered
// above their children.
var Dendrogram = &Engine{
	Name:        graph.EngineDendrogram,
	Description: "dendrogram with all leaves on one rail",
	New: func(opts Options) layout.Factory {
		return tree.New(tree.Options{
			Mode:        tree.ModeDendrogram,
			Orientation: tree.Orientation(opts.Orientation),
			Root:        opts.Root,
		})
	},
}

// Force runs the force-directed simulation.
var Force = &Engine{
	Name:        graph.EngineForce,
	Description: "force-directed simulation",
	New: func(opts Options) layout.Factory {
		cfg := force.DefaultConfig()
		if opts.Force != nil {
			cfg = *opts.Force
		}
		return force.New(cfg)
	},
}

// Find returns the engine with the given wire name, or nil.
func Find(name string) *Engine {
	for _, e := range All {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// New resolves name from the catalog and builds its factory.
func New(name string, opts Options) (layout.Factory, error) {
	if opts.Orientation != "" && !graph.ValidOrientation(opts.Orientation) {
		return nil, fmt.Errorf("%q: %w", opts.Orientation, ErrUnknownOrientation)
	}
	e := Find(name)
	if e == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEngine)
	}
	return e.New(opts), nil
}
