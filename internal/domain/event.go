package domain

// EventKind enumerates the delivery-event kinds the analytics engine counts.
// The set is open: providers emit other kinds (deferred, processed, spamreport,
// ...) which are stored verbatim but not rolled into any current metric.
type EventKind string

const (
	EventOpen      EventKind = "open"
	EventClick     EventKind = "click"
	EventBounce    EventKind = "bounce"
	EventDelivered EventKind = "delivered"
)

// DeliveryEvent is one provider-reported engagement occurrence tied to a
// previously sent message. Multiple events per message id are expected and
// all are retained (three reads of the same email produce three opens).
type DeliveryEvent struct {
	ID        string    `json:"id" db:"id"`
	MessageID string    `json:"message_id" db:"message_id"`
	Event     EventKind `json:"event" db:"event"`
	Email     string    `json:"email" db:"email"`
	Timestamp int64     `json:"timestamp" db:"event_timestamp"` // unix seconds

	URL        string `json:"url,omitempty" db:"url"`
	IPAddress  string `json:"ip,omitempty" db:"ip"`
	UserAgent  string `json:"user_agent,omitempty" db:"user_agent"`
	CampaignID string `json:"campaign_id,omitempty" db:"campaign_id"`
}
