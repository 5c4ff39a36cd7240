package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/internal/server"
	"github.com/graphmotion/graphmotion/pkg/config"
	"github.com/graphmotion/graphmotion/pkg/events"
)

// shutdownTimeout bounds how long in-flight requests may run after a
// shutdown signal.
const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command running the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP layout service",
		Long: `Run the HTTP layout service.

POST /v1/layout computes layouts from inline or cached datasets,
GET /v1/engines lists the selectable engines, and /healthz and /version
report service status. The cache backend, listen address, and event
broker come from the config file and GRAPHMOTION_* environment
variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// runServe wires the runner, publisher, and HTTP server together and
// blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	runner, err := c.newRunner(ctx, cfg, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var publisher events.Publisher
	if cfg.Events.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.Events.NATSURL)
		if err != nil {
			return fmt.Errorf("connect event broker: %w", err)
		}
		publisher = pub
		c.Logger.Info("events enabled", "nats_url", cfg.Events.NATSURL)
	} else {
		publisher = &events.NoopPublisher{}
		c.Logger.Info("events disabled (no nats_url configured)")
	}
	defer publisher.Close()

	srv := server.NewServer(runner, publisher, c.Logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("HTTP server listening", "addr", cfg.Server.Addr, "cache", cfg.Cache.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		c.Logger.Error("HTTP server shutdown error", "err", err)
	}
	c.Logger.Info("shutdown complete")
	return nil
}
