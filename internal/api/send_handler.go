package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/pkg/httputil"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
	"github.com/ignite/campaign-tracker/internal/sender"
)

// sendRequest is the campaign-send form payload. Field names are part of the
// dashboard's wire contract.
type sendRequest struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	Content    string `json:"content"` // HTML body
	CampaignID string `json:"campaignId"`
}

// HandleSend posts one campaign email through the configured ESP and, only
// after the provider accepts it, appends exactly one SentMessage carrying the
// provider's message id. On any failure nothing is appended.
func (h *Handlers) HandleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.To == "" || req.Subject == "" || req.Content == "" || req.CampaignID == "" {
		httputil.BadRequest(w, "missing required fields")
		return
	}
	if h.sender == nil {
		httputil.Error(w, http.StatusServiceUnavailable, "send path not configured")
		return
	}

	res, err := h.sender.Send(r.Context(), &sender.OutboundEmail{
		To:          req.To,
		FromEmail:   h.fromEmail,
		FromName:    h.fromName,
		Subject:     req.Subject,
		HTMLContent: req.Content,
		CampaignID:  req.CampaignID,
	})
	if err != nil {
		var apiErr *sender.APIError
		if errors.As(err, &apiErr) {
			logger.Error("send: provider rejected", "provider", apiErr.Provider, "status", apiErr.StatusCode, "detail", apiErr.Body)
			httputil.BadGateway(w, apiErr.Error())
			return
		}
		logger.Error("send: transport failure", "error", err)
		httputil.BadGateway(w, "error sending email")
		return
	}

	msg := &domain.SentMessage{
		CampaignID: req.CampaignID,
		MessageID:  res.MessageID,
		To:         req.To,
		Subject:    req.Subject,
		SentAt:     time.Now().UTC().Format(time.RFC3339),
		Status:     domain.MessageSent,
	}
	if err := h.store.AppendMessage(r.Context(), msg); err != nil {
		// The email is out but the log write failed; surface it so the
		// caller knows the analytics will undercount this send.
		logger.Error("send: append sent message", "message_id", res.MessageID, "error", err)
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, map[string]any{"success": true, "message_id": res.MessageID})
}
