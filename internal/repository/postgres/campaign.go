// Package postgres implements the storage repositories over database/sql
// and the lib/pq driver. The campaigns and daily_performance relations are
// written only by the ingestion collector and the seeder; everything else
// reads them.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/midas/analytics/internal/domain"
)

// CampaignRepo persists campaigns keyed by their platform campaign id.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

// Upsert inserts the campaign or refreshes its mutable attributes.
func (r *CampaignRepo) Upsert(ctx context.Context, c domain.Campaign) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns (campaign_id, campaign_name, platform, objective, funnel_stage)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (campaign_id) DO UPDATE SET
			campaign_name = EXCLUDED.campaign_name,
			objective = EXCLUDED.objective,
			funnel_stage = EXCLUDED.funnel_stage
	`, c.ID, c.Name, string(c.Platform), c.Objective, c.FunnelStage)
	if err != nil {
		return fmt.Errorf("upsert campaign %s: %w", c.ID, err)
	}
	return nil
}

// List returns all campaigns ordered by name.
func (r *CampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT campaign_id, campaign_name, platform,
		       COALESCE(objective, ''), COALESCE(funnel_stage, '')
		FROM campaigns
		ORDER BY campaign_name
	`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		var platform string
		if err := rows.Scan(&c.ID, &c.Name, &platform, &c.Objective, &c.FunnelStage); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		c.Platform = domain.Platform(platform)
		out = append(out, c)
	}
	return out, rows.Err()
}
