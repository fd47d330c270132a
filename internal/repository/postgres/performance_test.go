package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/midas/analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*PerformanceRepo, *CampaignRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPerformanceRepo(db), NewCampaignRepo(db), mock
}

func TestPerformanceRepo_UpsertUsesNaturalKey(t *testing.T) {
	repo, _, mock := setupTestDB(t)

	date := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("ON CONFLICT \\(report_date, platform, ad_id, campaign_id\\)").
		WithArgs(date, "Meta", "ad_1", "c1", int64(1000), int64(50), int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), domain.DailyPerformanceFact{
		ReportDate:  date,
		Platform:    domain.PlatformMeta,
		AdID:        "ad_1",
		CampaignID:  "c1",
		Impressions: 1000,
		Clicks:      50,
		Conversions: 5,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPerformanceRepo_DateRangeEmptyDataset(t *testing.T) {
	repo, _, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT MIN\\(report_date\\), MAX\\(report_date\\)").
		WillReturnRows(sqlmock.NewRows([]string{"min", "max"}).AddRow(nil, nil))

	start, end, err := repo.DateRange(context.Background())
	require.NoError(t, err)
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
}

func TestPerformanceRepo_TotalsZeroSafe(t *testing.T) {
	repo, _, mock := setupTestDB(t)

	mock.ExpectQuery("COALESCE\\(SUM\\(impressions\\), 0\\)").
		WillReturnRows(sqlmock.NewRows([]string{"impressions", "clicks", "conversions"}).
			AddRow(int64(0), int64(0), int64(0)))

	totals, err := repo.Totals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Totals{}, totals)
	assert.Equal(t, 0.0, totals.CTR())
}

func TestPerformanceRepo_DailyTrend(t *testing.T) {
	repo, _, mock := setupTestDB(t)

	d1 := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("WHERE report_date >= CURRENT_DATE").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"report_date", "impressions", "clicks", "conversions"}).
			AddRow(d1, int64(1000), int64(20), int64(2)).
			AddRow(d2, int64(1500), int64(30), int64(3)))

	trend, err := repo.DailyTrend(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, d1, trend[0].Date)
	assert.Equal(t, int64(1500), trend[1].Impressions)
}

func TestCampaignRepo_UpsertAndList(t *testing.T) {
	_, repo, mock := setupTestDB(t)

	mock.ExpectExec("INSERT INTO campaigns").
		WithArgs("c1", "Prospecting - Broad", "Meta", "CONVERSIONS", "Conversion").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), domain.Campaign{
		ID: "c1", Name: "Prospecting - Broad", Platform: domain.PlatformMeta,
		Objective: "CONVERSIONS", FunnelStage: "Conversion",
	})
	require.NoError(t, err)

	mock.ExpectQuery("FROM campaigns").
		WillReturnRows(sqlmock.NewRows([]string{"campaign_id", "campaign_name", "platform", "objective", "funnel_stage"}).
			AddRow("c1", "Prospecting - Broad", "Meta", "CONVERSIONS", "Conversion"))

	campaigns, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, domain.PlatformMeta, campaigns[0].Platform)
	assert.NoError(t, mock.ExpectationsWereMet())
}
