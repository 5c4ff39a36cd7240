// Package events publishes layout lifecycle notifications.
//
// A service computing layouts emits one event per lifecycle edge so
// downstream consumers (dashboards, cache warmers, webhook bridges) can
// follow along without polling. Payloads are JSON; the NATS backend is
// optional and everything degrades to [NoopPublisher] when no broker is
// configured.
package events

import "context"

// Event topic constants
const (
	TopicLayoutStarted = "graphmotion.layout.started"
	TopicLayoutSettled = "graphmotion.layout.settled"
	TopicLayoutStopped = "graphmotion.layout.stopped"
)

// LayoutStarted reports a layout run beginning.
type LayoutStarted struct {
	Generation string `json:"generation"`
	Engine     string `json:"engine"`
	Nodes      int    `json:"nodes"`
	Edges      int    `json:"edges"`
}

// LayoutSettled reports a finished run together with where it landed.
type LayoutSettled struct {
	Generation string `json:"generation"`
	Engine     string `json:"engine"`
	Nodes      int    `json:"nodes"`
	Iterations int    `json:"iterations,omitempty"` // force steps consumed, 0 for static engines
	DurationMS int64  `json:"duration_ms"`
}

// LayoutStopped reports a run cancelled before settling.
type LayoutStopped struct {
	Generation string `json:"generation"`
	Engine     string `json:"engine"`
	Reason     string `json:"reason,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
