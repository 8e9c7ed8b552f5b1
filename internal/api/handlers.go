// Package api exposes the HTTP surface: send, webhook ingest, analytics,
// and CSV export. All business logic lives in analytics/ and sender/; the
// handlers do request parsing, validation, and status-code mapping only.
package api

import (
	"github.com/ignite/campaign-tracker/internal/analytics"
	"github.com/ignite/campaign-tracker/internal/sender"
	"github.com/ignite/campaign-tracker/internal/store"
)

// Handlers carries the dependencies shared by all endpoints.
type Handlers struct {
	store     store.Store
	sender    sender.Sender
	collector *analytics.Collector // nil when the reactive loop isn't running
	fromEmail string
	fromName  string
}

// NewHandlers wires the endpoint dependencies. collector may be nil; the
// analytics endpoints then aggregate on demand per request.
func NewHandlers(st store.Store, snd sender.Sender, collector *analytics.Collector, fromEmail, fromName string) *Handlers {
	return &Handlers{
		store:     st,
		sender:    snd,
		collector: collector,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}
