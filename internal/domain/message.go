package domain

// MessageStatus enumerates the recorded state of a sent message.
type MessageStatus string

const (
	MessageSent MessageStatus = "sent"
)

// SentMessage is the log record written once per recipient per send attempt.
// It is created only after the ESP has accepted the message and returned a
// provider message id, and is immutable afterwards.
type SentMessage struct {
	ID         string        `json:"id" db:"id"`
	CampaignID string        `json:"campaign_id" db:"campaign_id"`
	MessageID  string        `json:"message_id" db:"message_id"`
	To         string        `json:"to" db:"recipient"`
	Subject    string        `json:"subject" db:"subject"`
	SentAt     string        `json:"sent_at" db:"sent_at"` // RFC 3339, UTC
	Status     MessageStatus `json:"status" db:"status"`
}
