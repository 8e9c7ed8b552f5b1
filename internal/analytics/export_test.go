package analytics

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/campaign-tracker/internal/domain"
)

func TestExtractRows(t *testing.T) {
	messages := []domain.SentMessage{
		{
			CampaignID: "launch",
			MessageID:  "m1",
			To:         "a@example.com",
			Subject:    "Welcome aboard",
			SentAt:     "2024-01-13T05:24:16Z",
		},
		{
			// No campaign id and no events at all.
			MessageID: "m2",
			To:        "b@example.com",
			Subject:   "Plain",
			SentAt:    "2024-01-14T10:00:00Z",
		},
	}
	events := []domain.DeliveryEvent{
		{MessageID: "m1", Event: domain.EventDelivered, Timestamp: 1705123000},
		{MessageID: "m1", Event: domain.EventOpen, Timestamp: 1705123100},
		{MessageID: "m1", Event: domain.EventOpen, Timestamp: 1705123456},
		{MessageID: "m1", Event: domain.EventClick, Timestamp: 1705123200},
		{MessageID: "m1", Event: domain.EventBounce, Timestamp: 1705123300},
		{MessageID: "other", Event: domain.EventOpen, Timestamp: 1705999999},
	}

	rows := ExtractRows(messages, events)
	require.Len(t, rows, 2)

	r := rows[0]
	assert.Equal(t, "launch", r.CampaignID)
	assert.Equal(t, "a@example.com", r.RecipientEmail)
	assert.Equal(t, "2024-01-13 05:24:16", r.SentAt)
	assert.Equal(t, "Yes", r.Delivered)
	assert.Equal(t, 2, r.OpensCount)
	assert.Equal(t, 1, r.ClicksCount)
	assert.Equal(t, 1, r.BouncesCount)
	// Latest of the two open timestamps, seconds rendered in UTC.
	assert.Equal(t, "2024-01-13 05:24:16", r.LastOpenTime)
	assert.Equal(t, "2024-01-13 05:20:00", r.LastClickTime)

	r = rows[1]
	assert.Equal(t, "N/A", r.CampaignID)
	assert.Equal(t, "No", r.Delivered)
	assert.Equal(t, 0, r.OpensCount)
	assert.Equal(t, "N/A", r.LastOpenTime)
	assert.Equal(t, "N/A", r.LastClickTime)
}

func TestExtractRowsUnparseableSentAt(t *testing.T) {
	messages := []domain.SentMessage{
		{MessageID: "m1", To: "a@example.com", SentAt: "not-a-timestamp"},
	}

	rows := ExtractRows(messages, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, "not-a-timestamp", rows[0].SentAt)
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	assert.Equal(t,
		"Campaign ID,Recipient Email,Subject,Sent At,Delivered,Opens Count,Clicks Count,Bounces Count,Last Open Time,Last Click Time\n",
		buf.String())
}

func TestWriteCSVQuoting(t *testing.T) {
	rows := []domain.ExportRow{
		{
			CampaignID:     "q4, retail",
			RecipientEmail: "a@example.com",
			Subject:        "He said \"hi\"\nsecond line",
			SentAt:         "2024-01-13 05:24:16",
			Delivered:      "Yes",
			OpensCount:     1,
			LastOpenTime:   "N/A",
			LastClickTime:  "N/A",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	// A standard CSV reader must round-trip the awkward fields exactly.
	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "q4, retail", records[1][0])
	assert.Equal(t, "He said \"hi\"\nsecond line", records[1][2])
	assert.Equal(t, "1", records[1][5])
}

func TestFormatEventTime(t *testing.T) {
	assert.Equal(t, "N/A", formatEventTime(0))
	assert.Equal(t, "N/A", formatEventTime(-5))
	assert.Equal(t, "2024-01-13 05:24:16", formatEventTime(1705123456))
}
