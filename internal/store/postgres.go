package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/campaign-tracker/internal/domain"
)

// Postgres is the database-backed Store. Schema lives in migrations/.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// AppendMessage inserts one sent-message record and assigns a fresh id.
func (s *Postgres) AppendMessage(ctx context.Context, m *domain.SentMessage) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `INSERT INTO sent_messages (id, campaign_id, message_id, recipient, subject, sent_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		m.ID, m.CampaignID, m.MessageID, m.To, m.Subject, m.SentAt, string(m.Status))
	if err != nil {
		return fmt.Errorf("append sent message: %w", err)
	}
	return nil
}

// Messages returns the full message log in insertion order.
func (s *Postgres) Messages(ctx context.Context) ([]domain.SentMessage, error) {
	query := `SELECT id, campaign_id, message_id, recipient, subject, sent_at, status
		FROM sent_messages ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read message log: %w", err)
	}
	defer rows.Close()

	var out []domain.SentMessage
	for rows.Next() {
		var m domain.SentMessage
		var status string
		if err := rows.Scan(&m.ID, &m.CampaignID, &m.MessageID, &m.To, &m.Subject, &m.SentAt, &status); err != nil {
			return nil, fmt.Errorf("scan sent message: %w", err)
		}
		m.Status = domain.MessageStatus(status)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read message log: %w", err)
	}
	return out, nil
}

// AppendEvent inserts one delivery-event record and assigns a fresh id.
// Optional fields are stored as NULL when empty, matching what providers
// actually send.
func (s *Postgres) AppendEvent(ctx context.Context, e *domain.DeliveryEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `INSERT INTO delivery_events (id, message_id, event, email, event_timestamp, url, ip, user_agent, campaign_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.MessageID, string(e.Event), e.Email, e.Timestamp,
		nullable(e.URL), nullable(e.IPAddress), nullable(e.UserAgent), nullable(e.CampaignID))
	if err != nil {
		return fmt.Errorf("append delivery event: %w", err)
	}
	return nil
}

// Events returns the full event log in insertion order.
func (s *Postgres) Events(ctx context.Context) ([]domain.DeliveryEvent, error) {
	query := `SELECT id, message_id, event, email, event_timestamp, url, ip, user_agent, campaign_id
		FROM delivery_events ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	defer rows.Close()

	var out []domain.DeliveryEvent
	for rows.Next() {
		var e domain.DeliveryEvent
		var kind string
		var url, ip, ua, campaignID sql.NullString
		if err := rows.Scan(&e.ID, &e.MessageID, &kind, &e.Email, &e.Timestamp, &url, &ip, &ua, &campaignID); err != nil {
			return nil, fmt.Errorf("scan delivery event: %w", err)
		}
		e.Event = domain.EventKind(kind)
		e.URL = url.String
		e.IPAddress = ip.String
		e.UserAgent = ua.String
		e.CampaignID = campaignID.String
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return out, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
