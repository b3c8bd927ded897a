// Package pubsub fans events out from one producer (the logger, the file
// watcher) to any number of Bubble Tea listeners.
package pubsub

import (
	"context"
	"time"
)

// EventType classifies a published event.
type EventType string

const (
	// EntryEvent carries a new item, e.g. a formatted log line.
	EntryEvent EventType = "entry"
	// ChangedEvent signals that watched content changed.
	ChangedEvent EventType = "changed"
	// ErrorEvent carries a failure from a background producer.
	ErrorEvent EventType = "error"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
