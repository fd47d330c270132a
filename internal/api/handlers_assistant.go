package api

import (
	"encoding/json"
	"net/http"

	"github.com/midas/analytics/internal/assistant"
)

type askRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

type askResponse struct {
	SessionID string           `json:"session_id"`
	Message   string           `json:"message"`
	Table     *assistant.Table `json:"table,omitempty"`
}

// AskAssistant processes one chat question. An unknown or empty session id
// starts a fresh conversation; the id comes back in the response so the
// client can continue it.
func (h *Handlers) AskAssistant(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// An empty or whitespace question is not rejected: it classifies to
	// the fallback intent and gets a normal answer.
	conv := h.Sessions.GetOrCreate(req.SessionID)
	reply := h.Assistant.Ask(r.Context(), conv, req.Question)

	respondJSON(w, http.StatusOK, askResponse{
		SessionID: conv.ID,
		Message:   reply.Content,
		Table:     reply.Table,
	})
}

// GetAssistantHistory returns the full turn log for a session.
func (h *Handlers) GetAssistantHistory(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.Sessions.Get(r.URL.Query().Get("session_id"))
	if !ok {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": conv.ID,
		"turns":      conv.Turns(),
	})
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

// ClearAssistant resets a session's history to the cleared greeting.
func (h *Handlers) ClearAssistant(w http.ResponseWriter, r *http.Request) {
	var req clearRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	conv, ok := h.Sessions.Get(req.SessionID)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown session")
		return
	}
	conv.Reset()
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": conv.ID,
		"turns":      conv.Turns(),
	})
}

// GetAssistantSummary returns the data-summary context shown next to the
// chat (campaign count, platforms, date range, totals).
func (h *Handlers) GetAssistantSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Assistant.Summary(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load data summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
