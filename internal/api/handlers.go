// Package api exposes the HTTP surface: dashboard aggregates, campaign
// listing, the daily trend, and the Data Assistant chat endpoints.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/midas/analytics/internal/alerts"
	"github.com/midas/analytics/internal/assistant"
	"github.com/midas/analytics/internal/cache"
	"github.com/midas/analytics/internal/repository/postgres"
)

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	Assistant *assistant.Assistant
	Sessions  *assistant.Store
	Executor  *assistant.Executor
	Campaigns *postgres.CampaignRepo
	Facts     *postgres.PerformanceRepo
	Detector  *alerts.Detector
	Cache     *cache.Cache

	DashboardTTL time.Duration
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// GetCampaigns lists all known campaigns.
func (h *Handlers) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.Campaigns.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list campaigns")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"count":     len(campaigns),
		"campaigns": campaigns,
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
