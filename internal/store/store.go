// Package store provides the append-only message and event logs.
//
// Two implementations exist: an in-memory store for tests and standalone
// runs, and a Postgres store for real deployments. Both assign opaque ids at
// append time and return records in insertion order. Records are never
// updated or deleted.
package store

import (
	"context"

	"github.com/ignite/campaign-tracker/internal/domain"
)

// MessageLog is the append/read contract for sent-message records.
// Implementations must be safe for concurrent use.
type MessageLog interface {
	// AppendMessage persists one record and assigns its ID in place.
	AppendMessage(ctx context.Context, m *domain.SentMessage) error

	// Messages returns every record in insertion order.
	Messages(ctx context.Context) ([]domain.SentMessage, error)
}

// EventLog is the append/read contract for delivery-event records.
type EventLog interface {
	AppendEvent(ctx context.Context, e *domain.DeliveryEvent) error
	Events(ctx context.Context) ([]domain.DeliveryEvent, error)
}

// Store combines both logs behind one handle.
type Store interface {
	MessageLog
	EventLog
}
