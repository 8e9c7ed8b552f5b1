// Package sender contains the outbound ESP adapters.
//
// Adapters are split into individual files:
//   - sendgrid.go: SendGrid v3 Mail Send
//   - ses.go:      AWS SES v2
//
// Every adapter satisfies the same contract: accept one fully-resolved email,
// return the provider-assigned message id used later as the join key for
// delivery events, or an error carrying the provider's diagnostics.
package sender

import (
	"context"
	"fmt"
	"time"
)

// Provider identifiers.
const (
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
)

// OutboundEmail is one fully-resolved campaign email ready for an ESP.
type OutboundEmail struct {
	To          string
	FromEmail   string
	FromName    string
	Subject     string
	HTMLContent string
	CampaignID  string
}

// SendResult is returned after the ESP accepts a message.
type SendResult struct {
	MessageID string
	Provider  string
	SentAt    time.Time
}

// Sender delivers a single email through an ESP.
type Sender interface {
	Send(ctx context.Context, msg *OutboundEmail) (*SendResult, error)
}

// APIError is a provider rejection with its diagnostic detail. Transport
// failures that never reached the provider surface as plain wrapped errors.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Provider, e.StatusCode, e.Body)
}
