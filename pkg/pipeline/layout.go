package pipeline

import (
	apperrors "github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/graph"
	"github.com/graphmotion/graphmotion/pkg/layout"
	"github.com/graphmotion/graphmotion/pkg/layout/engines"
	"github.com/graphmotion/graphmotion/pkg/layout/force"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs the requested engine over the graph until it
// settles or the iteration cap is reached. The int return is the number
// of steps actually run.
//
// The engine is driven on the calling goroutine through a manual
// scheduler, so a pipeline run never leaves stray timers behind. An
// unsettled snapshot (cap reached first) is still a usable layout; the
// Settled flag on the result says which case occurred.
func ComputeLayout(g *graph.Graph, opts Options) (graph.Layout, int, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, 0, err
	}

	factory, err := engines.New(opts.Engine, engines.Options{
		Orientation: opts.Orientation,
		Root:        opts.Root,
		Force:       forceConfig(opts),
	})
	if err != nil {
		return graph.Layout{}, 0, err
	}

	var sched layout.ManualScheduler
	settled := false
	eng := factory(layout.Env{
		Scheduler: &sched,
		Notify: func(ev layout.Event) {
			if ev == layout.EventSettled {
				settled = true
			}
		},
		Logger: opts.Logger,
	})

	if err := eng.Resync(g); err != nil {
		return graph.Layout{}, 0, apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err,
			"compute %s layout", opts.Engine)
	}

	steps := 0
	for steps < opts.Iterations && !settled {
		if sched.Fire() == 0 {
			break
		}
		steps++
	}
	eng.Stop()

	return eng.Snapshot(), steps, nil
}

// forceConfig assembles the force configuration for a synchronous run.
// The pipeline pumps steps itself, so auto-restart must stay on or a
// resync would park before the first pump.
func forceConfig(opts Options) *force.Config {
	if opts.Engine != graph.EngineForce {
		return nil
	}
	cfg := force.DefaultConfig()
	if opts.Force != nil {
		cfg = *opts.Force
	}
	cfg.AutoRestart = true
	return &cfg
}
