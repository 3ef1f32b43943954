// Package journal persists pipeline run events so past releases can be
// inspected after the fact. Events are append-only; the run history read
// model is rebuilt from them.
package journal

import (
	"context"
	"time"
)

// Store defines the interface for persisting and retrieving run events.
type Store interface {
	// Append adds a new event to the journal.
	Append(ctx context.Context, runID, eventType string, payload []byte, metadata map[string]string) error

	// GetByRunID retrieves all events for a specific run, oldest first.
	GetByRunID(ctx context.Context, runID string) ([]Event, error)

	// GetRange retrieves events within a time range.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// Close closes the store and releases resources.
	Close() error
}

// Event represents one recorded pipeline occurrence.
type Event interface {
	// ID returns the journal sequence number.
	ID() int64
	// RunID returns the run this event belongs to.
	RunID() string
	// Type returns the event type name.
	Type() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
	// Payload returns the event data as bytes.
	Payload() []byte
	// Metadata returns optional event metadata.
	Metadata() map[string]string
}

// BaseEvent provides a default implementation of Event.
type BaseEvent struct {
	EventID        int64
	EventRunID     string
	EventType      string
	EventTimestamp time.Time
	EventPayload   []byte
	EventMetadata  map[string]string
}

func (e *BaseEvent) ID() int64                   { return e.EventID }
func (e *BaseEvent) RunID() string               { return e.EventRunID }
func (e *BaseEvent) Type() string                { return e.EventType }
func (e *BaseEvent) Timestamp() time.Time        { return e.EventTimestamp }
func (e *BaseEvent) Payload() []byte             { return e.EventPayload }
func (e *BaseEvent) Metadata() map[string]string { return e.EventMetadata }

// Record appends a typed event to the store.
func Record(ctx context.Context, store Store, event Event) error {
	return store.Append(ctx, event.RunID(), event.Type(), event.Payload(), event.Metadata())
}
