// Package eventfeed announces committed event changes to downstream consumers
// (the public map screen, notification workers) over Kafka.
package eventfeed

import (
	"context"
	"time"
)

const (
	TypeCreated = "event.created"
	TypeUpdated = "event.updated"
	TypeDeleted = "event.deleted"
)

// Change is one committed mutation. Event is the record after the change, or
// the removed record for deletions.
type Change struct {
	Type    string      `json:"type"`
	EventID string      `json:"eventId"`
	DateKey string      `json:"dateKey"`
	Event   interface{} `json:"event,omitempty"`
	At      time.Time   `json:"at"`
}

// Publisher sends changes after they are committed. Implementations must not
// block the caller for longer than ctx allows.
type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}

// Nop drops every change; used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, Change) error { return nil }
func (Nop) Close() error                          { return nil }
