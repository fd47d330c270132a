package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/midas/analytics/internal/domain"
)

// PerformanceRepo persists daily performance facts.
type PerformanceRepo struct{ db *sql.DB }

// NewPerformanceRepo creates a Postgres-backed performance repository.
func NewPerformanceRepo(db *sql.DB) *PerformanceRepo { return &PerformanceRepo{db: db} }

// Upsert writes a fact, replacing the metrics when the natural key
// (report_date, platform, ad_id, campaign_id) already exists. This keeps
// collector cycles idempotent over overlapping windows.
func (r *PerformanceRepo) Upsert(ctx context.Context, f domain.DailyPerformanceFact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_performance (report_date, platform, ad_id, campaign_id, impressions, clicks, conversions)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (report_date, platform, ad_id, campaign_id) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			conversions = EXCLUDED.conversions
	`, f.ReportDate, string(f.Platform), f.AdID, f.CampaignID, f.Impressions, f.Clicks, f.Conversions)
	if err != nil {
		return fmt.Errorf("upsert fact %s/%s/%s: %w", f.ReportDate.Format("2006-01-02"), f.Platform, f.AdID, err)
	}
	return nil
}

// DateRange returns the earliest and latest report dates, zero times when
// there is no data yet.
func (r *PerformanceRepo) DateRange(ctx context.Context) (time.Time, time.Time, error) {
	var start, end sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT MIN(report_date), MAX(report_date) FROM daily_performance
	`).Scan(&start, &end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date range: %w", err)
	}
	return start.Time, end.Time, nil
}

// Totals returns whole-dataset sums. Zero facts yield zero totals.
func (r *PerformanceRepo) Totals(ctx context.Context) (domain.Totals, error) {
	var t domain.Totals
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(impressions), 0),
		       COALESCE(SUM(clicks), 0),
		       COALESCE(SUM(conversions), 0)
		FROM daily_performance
	`).Scan(&t.Impressions, &t.Clicks, &t.Conversions)
	if err != nil {
		return domain.Totals{}, fmt.Errorf("totals: %w", err)
	}
	return t, nil
}

// TrendPoint is one day of aggregated delivery metrics.
type TrendPoint struct {
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
}

// DailyTrend returns per-day sums for the trailing window, oldest first.
func (r *PerformanceRepo) DailyTrend(ctx context.Context, days int) ([]TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT report_date,
		       SUM(impressions), SUM(clicks), SUM(conversions)
		FROM daily_performance
		WHERE report_date >= CURRENT_DATE - $1::int
		GROUP BY report_date
		ORDER BY report_date
	`, days)
	if err != nil {
		return nil, fmt.Errorf("daily trend: %w", err)
	}
	defer rows.Close()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Date, &p.Impressions, &p.Clicks, &p.Conversions); err != nil {
			return nil, fmt.Errorf("scan trend point: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
