package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/midas/analytics/internal/alerts"
	"github.com/midas/analytics/internal/assistant"
)

const dashboardCacheKey = "dashboard:aggregates"

// dashboardPayload is the cached dashboard aggregate set.
type dashboardPayload struct {
	Summary   assistant.DataSummary `json:"summary"`
	Platforms *assistant.Table      `json:"platforms"`
	Alerts    []alerts.Alert        `json:"alerts"`
	KPIs      map[string]any        `json:"kpis"`
}

// GetDashboard returns KPI totals, the platform comparison, and active
// anomaly alerts in one call. The aggregate set is cached with a coarse
// TTL; stale reads within the window are accepted.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload dashboardPayload
	if ok, err := h.Cache.GetJSON(ctx, dashboardCacheKey, &payload); err != nil {
		log.Printf("[api] dashboard cache read failed: %v", err)
	} else if ok {
		respondJSON(w, http.StatusOK, payload)
		return
	}

	summary, err := h.Assistant.Summary(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load data summary")
		return
	}
	payload.Summary = summary
	payload.KPIs = map[string]any{
		"impressions":     summary.Totals.Impressions,
		"clicks":          summary.Totals.Clicks,
		"conversions":     summary.Totals.Conversions,
		"ctr":             summary.Totals.CTR(),
		"conversion_rate": summary.Totals.ConversionRate(),
	}

	// Platform comparison reuses the assistant's vetted template
	platformTable, err := h.Executor.Execute(ctx, assistant.IntentPlatformComparison, assistant.Params{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load platform comparison")
		return
	}
	payload.Platforms = &platformTable

	trend, err := h.Facts.DailyTrend(ctx, 30)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load trend")
		return
	}
	payload.Alerts = h.Detector.Detect(trend)

	if err := h.Cache.SetJSON(ctx, dashboardCacheKey, payload, h.DashboardTTL); err != nil {
		log.Printf("[api] dashboard cache write failed: %v", err)
	}
	respondJSON(w, http.StatusOK, payload)
}

// GetTrend returns the per-day delivery sums for the requested trailing
// window (?days=N, default 30).
func (h *Handlers) GetTrend(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			respondError(w, http.StatusBadRequest, "days must be an integer between 1 and 365")
			return
		}
		days = n
	}

	trend, err := h.Facts.DailyTrend(r.Context(), days)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load trend")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"days":  days,
		"trend": trend,
	})
}
