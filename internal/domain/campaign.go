// Package domain holds the core types shared across the analytics service:
// campaigns, daily performance facts, and the enumerations derived from them.
package domain

import "time"

// Platform identifies an advertising platform.
type Platform string

const (
	PlatformMeta     Platform = "Meta"
	PlatformGoogle   Platform = "Google"
	PlatformTikTok   Platform = "TikTok"
	PlatformSnapchat Platform = "Snapchat"
)

// Campaign is an advertising campaign as ingested from a platform.
// Rows are created and updated by the ingestion collector; the assistant
// and dashboard only ever read them.
type Campaign struct {
	ID          string   `json:"campaign_id"`
	Name        string   `json:"campaign_name"`
	Platform    Platform `json:"platform"`
	Objective   string   `json:"objective"`
	FunnelStage string   `json:"funnel_stage"`
}

// DailyPerformanceFact is one day of delivery metrics for a single ad.
// The tuple (ReportDate, Platform, AdID, CampaignID) is the natural key;
// the schema enforces uniqueness on it so re-ingestion is idempotent.
type DailyPerformanceFact struct {
	ReportDate  time.Time `json:"report_date"`
	Platform    Platform  `json:"platform"`
	AdID        string    `json:"ad_id"`
	CampaignID  string    `json:"campaign_id"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Conversions int64     `json:"conversions"`
}

// CTR returns the click-through rate as a percentage (clicks/impressions*100),
// 0 when there are no impressions.
func (f DailyPerformanceFact) CTR() float64 {
	if f.Impressions == 0 {
		return 0
	}
	return float64(f.Clicks) / float64(f.Impressions) * 100
}
