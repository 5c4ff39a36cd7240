package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphmotion/graphmotion/pkg/errors"
	"github.com/graphmotion/graphmotion/pkg/events"
)

// eventsCommand creates the events command group.
func (c *CLI) eventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Work with layout lifecycle events",
	}

	cmd.AddCommand(c.eventsTailCommand())

	return cmd
}

// eventsTailCommand creates the "events tail" subcommand.
func (c *CLI) eventsTailCommand() *cobra.Command {
	var (
		url   string
		topic string
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Follow layout events from the broker",
		Long: `Follow layout events from the broker.

Connects to the configured NATS server and prints every layout lifecycle
event as it arrives. The default topic covers all graphmotion subjects;
narrow it with --topic (NATS wildcards are supported).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				url = cfg.Events.NATSURL
			}
			if url == "" {
				return errors.New(errors.ErrCodeInvalidInput,
					"no broker configured: set events.nats_url or pass --url")
			}
			return c.runEventsTail(cmd.Context(), url, topic)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "NATS server URL (overrides config)")
	cmd.Flags().StringVar(&topic, "topic", "graphmotion.>", "subject to subscribe to")

	return cmd
}

// runEventsTail subscribes and prints events until the context ends.
func (c *CLI) runEventsTail(ctx context.Context, url, topic string) error {
	sub, err := events.NewNATSSubscriber(url)
	if err != nil {
		return fmt.Errorf("connect event broker: %w", err)
	}
	defer sub.Close()

	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", topic, err)
	}
	defer cancel()

	printInfo("Tailing %s (ctrl+c to stop)", topic)
	for {
		select {
		case <-ctx.Done():
			printNewline()
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			stamp := time.Now().Format("15:04:05")
			fmt.Printf("%s %s %s\n",
				StyleDim.Render(stamp),
				StyleTitle.Render(msg.Topic),
				StyleValue.Render(string(msg.Data)))
		}
	}
}
