package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ignite/campaign-tracker/internal/analytics"
	"github.com/ignite/campaign-tracker/internal/domain"
	"github.com/ignite/campaign-tracker/internal/pkg/httputil"
)

// HandleAnalytics serves the dashboard's aggregate metrics. When the
// collector loop is running the cached snapshot is served; otherwise the
// stats are aggregated on demand from the logs.
func (h *Handlers) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	if h.collector != nil && h.collector.IsRunning() {
		httputil.OK(w, h.collector.Latest())
		return
	}

	stats, ok := h.aggregate(w, r)
	if !ok {
		return
	}
	httputil.OK(w, stats)
}

// HandleCampaignStats serves the breakdown for a single campaign.
func (h *Handlers) HandleCampaignStats(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "campaignID")

	var stats domain.GlobalStats
	if h.collector != nil && h.collector.IsRunning() {
		stats = h.collector.Latest()
	} else {
		var ok bool
		stats, ok = h.aggregate(w, r)
		if !ok {
			return
		}
	}

	for _, cs := range stats.CampaignStats {
		if cs.CampaignID == campaignID {
			httputil.OK(w, cs)
			return
		}
	}
	httputil.NotFound(w, "campaign not found")
}

// aggregate reads both logs and runs the pure aggregation. A store read
// failure is reported here, at the boundary; the aggregation itself cannot
// fail.
func (h *Handlers) aggregate(w http.ResponseWriter, r *http.Request) (domain.GlobalStats, bool) {
	messages, err := h.store.Messages(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return domain.GlobalStats{}, false
	}
	events, err := h.store.Events(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return domain.GlobalStats{}, false
	}
	return analytics.Aggregate(messages, events), true
}
