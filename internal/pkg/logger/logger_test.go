package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, fn func()) map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	fn()

	if buf.Len() == 0 {
		return nil
	}
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogProducesJSON(t *testing.T) {
	entry := capture(t, func() {
		Info("send accepted", "message_id", "sg-123", "campaign_id", "launch")
	})

	require.NotNil(t, entry)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "send accepted", entry["msg"])
	assert.Equal(t, "sg-123", entry["message_id"])
	assert.Equal(t, "launch", entry["campaign_id"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogLevelFiltering(t *testing.T) {
	SetLevel(WARN)
	t.Cleanup(func() { SetLevel(INFO) })

	entry := capture(t, func() {
		Info("should be dropped")
	})
	assert.Nil(t, entry)

	entry = capture(t, func() {
		Error("kept", "code", 500)
	})
	require.NotNil(t, entry)
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLogRedactsRecipientFields(t *testing.T) {
	entry := capture(t, func() {
		Info("sendgrid: sent", "to", "john.doe@example.com")
	})

	require.NotNil(t, entry)
	assert.Equal(t, "jo***@example.com", entry["to"])
}

func TestLogRedactsEmbeddedAddresses(t *testing.T) {
	entry := capture(t, func() {
		Warn("bounce", "detail", "mailbox john.doe@example.com unavailable")
	})

	require.NotNil(t, entry)
	assert.Equal(t, "mailbox jo***@example.com unavailable", entry["detail"])
}

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}
