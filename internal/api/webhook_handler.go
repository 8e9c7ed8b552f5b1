package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/pkg/httputil"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
)

// sendGridEvent is one element of a SendGrid event-webhook batch.
type sendGridEvent struct {
	SGMessageID string `json:"sg_message_id"`
	Event       string `json:"event"`
	Email       string `json:"email"`
	Timestamp   int64  `json:"timestamp"` // unix seconds
	URL         string `json:"url"`
	IP          string `json:"ip"`
	UserAgent   string `json:"useragent"`
	CampaignID  string `json:"campaignId"`
}

// HandleSendGridWebhook ingests a SendGrid event batch. The body must be a
// JSON array; anything else is rejected outright with nothing appended.
// Ingestion is not transactional: a store failure mid-batch leaves the
// already-appended prefix in place and reports the failure, and the provider
// retries the whole batch.
func (h *Handlers) HandleSendGridWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.BadRequest(w, "failed to read body")
		return
	}

	var events []sendGridEvent
	if err := json.Unmarshal(body, &events); err != nil {
		logger.Warn("webhook: non-array payload rejected", "error", err)
		httputil.BadRequest(w, "expected an array of events")
		return
	}

	appended := 0
	for _, evt := range events {
		// Unknown event kinds are preserved verbatim; the aggregator
		// decides what counts.
		rec := &domain.DeliveryEvent{
			MessageID:  evt.SGMessageID,
			Event:      domain.EventKind(evt.Event),
			Email:      evt.Email,
			Timestamp:  evt.Timestamp,
			URL:        evt.URL,
			IPAddress:  evt.IP,
			UserAgent:  evt.UserAgent,
			CampaignID: evt.CampaignID,
		}
		if err := h.store.AppendEvent(r.Context(), rec); err != nil {
			logger.Error("webhook: append delivery event", "appended", appended, "error", err)
			httputil.JSON(w, http.StatusInternalServerError, map[string]any{
				"error":    "error processing webhook",
				"appended": appended,
			})
			return
		}
		appended++
	}

	httputil.OK(w, map[string]any{"success": true, "appended": appended})
}
