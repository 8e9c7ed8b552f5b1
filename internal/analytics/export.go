package analytics

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/ignite/campaign-tracker/internal/domain"
)

// ExportFileName is the suggested attachment filename for the CSV extract.
const ExportFileName = "email_analytics.csv"

// exportHeader is the fixed CSV header row. Column order is a wire contract;
// do not reorder.
var exportHeader = []string{
	"Campaign ID", "Recipient Email", "Subject", "Sent At", "Delivered",
	"Opens Count", "Clicks Count", "Bounces Count", "Last Open Time", "Last Click Time",
}

// timeLayout renders timestamps in the export. UTC, second precision.
const timeLayout = "2006-01-02 15:04:05"

// notAvailable is the sentinel for absent timestamps and campaign ids.
const notAvailable = "N/A"

// ExtractRows produces one export row per sent message. Events are indexed by
// message id once, so the whole extract is O(n+m) rather than a per-message
// scan of the event log.
func ExtractRows(messages []domain.SentMessage, events []domain.DeliveryEvent) []domain.ExportRow {
	byMessage := make(map[string][]domain.DeliveryEvent, len(messages))
	for _, e := range events {
		byMessage[e.MessageID] = append(byMessage[e.MessageID], e)
	}

	rows := make([]domain.ExportRow, 0, len(messages))
	for _, m := range messages {
		var opens, clicks, bounces, delivered int
		var lastOpen, lastClick int64

		for _, e := range byMessage[m.MessageID] {
			switch e.Event {
			case domain.EventOpen:
				opens++
				if e.Timestamp > lastOpen {
					lastOpen = e.Timestamp
				}
			case domain.EventClick:
				clicks++
				if e.Timestamp > lastClick {
					lastClick = e.Timestamp
				}
			case domain.EventBounce:
				bounces++
			case domain.EventDelivered:
				delivered++
			}
		}

		rows = append(rows, domain.ExportRow{
			CampaignID:     orNA(m.CampaignID),
			RecipientEmail: m.To,
			Subject:        m.Subject,
			SentAt:         formatSentAt(m.SentAt),
			Delivered:      yesNo(delivered > 0),
			OpensCount:     opens,
			ClicksCount:    clicks,
			BouncesCount:   bounces,
			LastOpenTime:   formatEventTime(lastOpen),
			LastClickTime:  formatEventTime(lastClick),
		})
	}
	return rows
}

// WriteCSV serializes rows with the fixed header. Fields containing the
// delimiter, quotes, or newlines are quoted per RFC 4180 (embedded quotes
// doubled), so a standard CSV parser round-trips the content exactly.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			r.CampaignID,
			r.RecipientEmail,
			r.Subject,
			r.SentAt,
			r.Delivered,
			strconv.Itoa(r.OpensCount),
			strconv.Itoa(r.ClicksCount),
			strconv.Itoa(r.BouncesCount),
			r.LastOpenTime,
			r.LastClickTime,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatEventTime renders a provider timestamp, which is in SECONDS since
// epoch. The millisecond conversion before formatting mirrors the original
// dashboard and is load-bearing: dropping it shifts every date to 1970.
func formatEventTime(sec int64) string {
	if sec <= 0 {
		return notAvailable
	}
	return time.UnixMilli(sec * 1000).UTC().Format(timeLayout)
}

// formatSentAt reformats the stored RFC 3339 sent-at string for the export.
// An unparseable value passes through verbatim rather than failing the row.
func formatSentAt(sentAt string) string {
	t, err := time.Parse(time.RFC3339, sentAt)
	if err != nil {
		return sentAt
	}
	return t.UTC().Format(timeLayout)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
