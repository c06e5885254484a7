// Package pubsub provides topic-based event publishing with an SSE
// implementation, used to push analysis status to web subscribers.
package pubsub

import (
	"context"
	"encoding/json"
)

// Event is a published message on a topic.
type Event struct {
	Topic   string          `json:"topic"`
	Type    string          `json:"type"`
	Data    json.RawMessage `json:"data"`
	Version int             `json:"version"` // per-topic ordering
}

// Subscription is a client subscription to a topic.
type Subscription interface {
	// Topic returns the subscription topic.
	Topic() string

	// Events returns a channel for receiving events.
	Events() <-chan Event

	// Close closes the subscription.
	Close() error
}

// Publisher manages subscriptions and event publishing.
type Publisher interface {
	// Subscribe creates a new subscription to a topic.
	// Context cancellation will close the subscription.
	Subscribe(ctx context.Context, topic string) (Subscription, error)

	// Publish sends an event to all subscribers of a topic.
	Publish(topic string, eventType string, data interface{}) error

	// Close shuts down the publisher and all subscriptions.
	Close() error
}

// AnalysisStatus reports the state of the current analysis run.
type AnalysisStatus struct {
	State       string `json:"state"` // loading, analyzing, ready, failed
	Message     string `json:"message"`
	RunID       string `json:"run_id"`
	UsersLoaded int    `json:"users_loaded"`
}
