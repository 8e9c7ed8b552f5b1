package api

import (
	"net/http"

	"github.com/ignite/campaign-tracker/internal/analytics"
	"github.com/ignite/campaign-tracker/internal/pkg/httputil"
	"github.com/ignite/campaign-tracker/internal/pkg/logger"
)

// HandleExport streams the per-message CSV extract. The export always reads
// the logs directly rather than the collector snapshot: a download should
// reflect the logs at request time, staleness tolerances don't apply.
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	messages, err := h.store.Messages(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	events, err := h.store.Events(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	rows := analytics.ExtractRows(messages, events)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=`+analytics.ExportFileName)
	w.WriteHeader(http.StatusOK)

	if err := analytics.WriteCSV(w, rows); err != nil {
		// Headers are gone; all we can do is log.
		logger.Error("export: write csv", "rows", len(rows), "error", err)
	}
}
