package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
)

// SendGridSender sends emails via the SendGrid v3 Mail Send API with
// provider-side open and click tracking enabled, so engagement comes back
// through the event webhook keyed by the X-Message-Id this sender returns.
type SendGridSender struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewSendGridSender creates a SendGrid sender. baseURL is overridable for
// tests; empty means the production API.
func NewSendGridSender(apiKey, baseURL string) *SendGridSender {
	if baseURL == "" {
		baseURL = "https://api.sendgrid.com/v3"
	}
	return &SendGridSender{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers a single email through SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg *OutboundEmail) (*SendResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("SendGrid API key not configured")
	}

	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{
				"to":          []map[string]string{{"email": msg.To}},
				"custom_args": map[string]string{"campaign_id": msg.CampaignID},
			},
		},
		"from":    map[string]string{"email": msg.FromEmail, "name": msg.FromName},
		"subject": msg.Subject,
		"content": []map[string]string{{"type": "text/html", "value": msg.HTMLContent}},
		"tracking_settings": map[string]interface{}{
			"click_tracking": map[string]bool{"enable": true},
			"open_tracking":  map[string]bool{"enable": true},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/mail/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		return nil, &APIError{Provider: ProviderSendGrid, StatusCode: resp.StatusCode, Body: string(body)}
	}

	messageID := resp.Header.Get("X-Message-Id")
	if messageID == "" {
		messageID = uuid.New().String()
	}

	logger.Info("sendgrid: sent", "to", msg.To, "message_id", messageID, "campaign_id", msg.CampaignID)
	return &SendResult{MessageID: messageID, Provider: ProviderSendGrid, SentAt: time.Now().UTC()}, nil
}
