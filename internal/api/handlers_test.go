package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/midas/analytics/internal/alerts"
	"github.com/midas/analytics/internal/assistant"
	"github.com/midas/analytics/internal/cache"
	"github.com/midas/analytics/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*chiServer, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := cache.New(nil)
	exec := assistant.NewExecutor(db)
	campaigns := postgres.NewCampaignRepo(db)
	facts := postgres.NewPerformanceRepo(db)

	h := &Handlers{
		Assistant:    assistant.New(exec, campaigns, facts, c, time.Hour),
		Sessions:     assistant.NewStore(),
		Executor:     exec,
		Campaigns:    campaigns,
		Facts:        facts,
		Detector:     alerts.NewDetector(),
		Cache:        c,
		DashboardTTL: 10 * time.Minute,
	}
	return &chiServer{router: SetupRoutes(h)}, mock
}

type chiServer struct {
	router http.Handler
}

func (s *chiServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func expectPlatformComparison(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("GROUP BY c\\.platform").
		WillReturnRows(sqlmock.NewRows([]string{"platform", "impressions", "clicks", "conversions", "ctr", "conversion_rate"}).
			AddRow("Meta", int64(1000), int64(50), int64(5), 5.0, 10.0).
			AddRow("Google", int64(800), int64(16), int64(2), 2.0, 12.5))
}

func TestHealthCheck(t *testing.T) {
	srv, _ := setupTestServer(t)
	rec := srv.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestAskAssistant_RoundTrip(t *testing.T) {
	srv, mock := setupTestServer(t)
	expectPlatformComparison(mock)

	rec := srv.do(t, http.MethodPost, "/api/assistant/ask", map[string]string{
		"question": "compare platforms",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string           `json:"session_id"`
		Message   string           `json:"message"`
		Table     *assistant.Table `json:"table"`
	}
	decodeBody(t, rec, &resp)
	assert.NotEmpty(t, resp.SessionID)
	assert.Contains(t, resp.Message, "Platform Comparison")
	require.NotNil(t, resp.Table)
	assert.Len(t, resp.Table.Rows, 2)
}

func TestAskAssistant_ContinuesSession(t *testing.T) {
	srv, mock := setupTestServer(t)
	expectPlatformComparison(mock)
	expectPlatformComparison(mock)

	first := srv.do(t, http.MethodPost, "/api/assistant/ask", map[string]string{
		"question": "how do the platforms compare?",
	})
	require.Equal(t, http.StatusOK, first.Code)

	var firstResp struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, first, &firstResp)

	second := srv.do(t, http.MethodPost, "/api/assistant/ask", map[string]string{
		"session_id": firstResp.SessionID,
		"question":   "compare channels again",
	})
	require.Equal(t, http.StatusOK, second.Code)

	hist := srv.do(t, http.MethodGet, "/api/assistant/history?session_id="+firstResp.SessionID, nil)
	require.Equal(t, http.StatusOK, hist.Code)

	var histResp struct {
		Turns []assistant.Turn `json:"turns"`
	}
	decodeBody(t, hist, &histResp)
	// greeting + 2 questions + 2 answers
	assert.Len(t, histResp.Turns, 5)
}

func TestAskAssistant_StorageFailureStillAnswers(t *testing.T) {
	srv, mock := setupTestServer(t)
	mock.ExpectQuery("GROUP BY c\\.platform").
		WillReturnError(errors.New("connection refused"))

	rec := srv.do(t, http.MethodPost, "/api/assistant/ask", map[string]string{
		"question": "compare platforms",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string           `json:"message"`
		Table   *assistant.Table `json:"table"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Message, "Sorry, I encountered an error")
	assert.Nil(t, resp.Table)
}

func TestAskAssistant_InvalidBody(t *testing.T) {
	srv, _ := setupTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/assistant/ask", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetAssistantHistory_UnknownSession(t *testing.T) {
	srv, _ := setupTestServer(t)
	rec := srv.do(t, http.MethodGet, "/api/assistant/history?session_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearAssistant_ResetsToGreeting(t *testing.T) {
	srv, mock := setupTestServer(t)
	expectPlatformComparison(mock)

	first := srv.do(t, http.MethodPost, "/api/assistant/ask", map[string]string{
		"question": "compare platforms",
	})
	var firstResp struct {
		SessionID string `json:"session_id"`
	}
	decodeBody(t, first, &firstResp)

	rec := srv.do(t, http.MethodPost, "/api/assistant/clear", map[string]string{
		"session_id": firstResp.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		SessionID string           `json:"session_id"`
		Turns     []assistant.Turn `json:"turns"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, firstResp.SessionID, resp.SessionID)
	require.Len(t, resp.Turns, 1)
	assert.Contains(t, resp.Turns[0].Content, "cleared")
}

func TestGetTrend_Validation(t *testing.T) {
	srv, _ := setupTestServer(t)

	for _, q := range []string{"?days=abc", "?days=0", "?days=366", "?days=-5"} {
		rec := srv.do(t, http.MethodGet, "/api/trend"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestGetTrend_DefaultWindow(t *testing.T) {
	srv, mock := setupTestServer(t)

	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE report_date >= CURRENT_DATE").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"report_date", "impressions", "clicks", "conversions"}).
			AddRow(day, int64(100), int64(5), int64(1)))

	rec := srv.do(t, http.MethodGet, "/api/trend", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Days  int                   `json:"days"`
		Trend []postgres.TrendPoint `json:"trend"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 30, resp.Days)
	require.Len(t, resp.Trend, 1)
	assert.Equal(t, int64(100), resp.Trend[0].Impressions)
}

func TestGetCampaigns(t *testing.T) {
	srv, mock := setupTestServer(t)

	mock.ExpectQuery("FROM campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "campaign_name", "platform", "objective", "funnel_stage"}).
			AddRow("c1", "Prospecting - Broad", "Meta", "CONVERSIONS", "Conversion"))

	rec := srv.do(t, http.MethodGet, "/api/campaigns", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count int `json:"count"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Count)
}

func TestGetDashboard_AssemblesAggregates(t *testing.T) {
	srv, mock := setupTestServer(t)

	// summary: campaign list, date range, totals
	mock.ExpectQuery("FROM campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "campaign_name", "platform", "objective", "funnel_stage"}).
			AddRow("c1", "Prospecting - Broad", "Meta", "CONVERSIONS", "Conversion"))
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT MIN\\(report_date\\), MAX\\(report_date\\)").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(start, end))
	mock.ExpectQuery("COALESCE\\(SUM\\(impressions\\), 0\\)").
		WillReturnRows(sqlmock.NewRows([]string{"impressions", "clicks", "conversions"}).
			AddRow(int64(10000), int64(500), int64(50)))

	expectPlatformComparison(mock)

	day := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE report_date >= CURRENT_DATE").
		WithArgs(30).
		WillReturnRows(sqlmock.NewRows([]string{"report_date", "impressions", "clicks", "conversions"}).
			AddRow(day, int64(1000), int64(50), int64(5)))

	rec := srv.do(t, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Summary   assistant.DataSummary `json:"summary"`
		Platforms *assistant.Table      `json:"platforms"`
		KPIs      map[string]float64    `json:"kpis"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, 1, resp.Summary.CampaignCount)
	assert.Equal(t, "2026-07-01", resp.Summary.DateStart)
	require.NotNil(t, resp.Platforms)
	assert.Len(t, resp.Platforms.Rows, 2)
	assert.Equal(t, float64(10000), resp.KPIs["impressions"])
	assert.Equal(t, 5.0, resp.KPIs["ctr"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
