package assistant

import (
	"fmt"

	"github.com/midas/analytics/internal/domain"
)

// Parameter bounds applied before any query is constructed. Limits and
// windows originate in free text, so they are clamped here rather than
// trusted downstream.
const (
	minLimit      = 1
	maxLimit      = 50
	defaultLimit  = 5
	minWindowDays = 1
	maxWindowDays = 365
)

// Template is a vetted, parameterized aggregation over the campaigns and
// daily_performance relations. The only string ever interpolated into SQL
// is a Metric column name validated against the closed enum; everything
// else is bound as a query parameter.
type Template struct {
	Intent Intent
	Build  func(p Params) (query string, args []any)
}

// Resolve returns the template for the given intent after sanitizing its
// parameters. Every intent resolves: the registry is total over the Intent
// enumeration.
func Resolve(intent Intent, p Params) (Template, Params) {
	p = sanitize(intent, p)
	return registry[intent], p
}

// sanitize clamps out-of-range parameters and substitutes the default
// metric for anything outside the enum. Invalid input never reaches the
// storage layer.
func sanitize(intent Intent, p Params) Params {
	switch intent {
	case IntentDailyTrend:
		if p.WindowDays < minWindowDays {
			p.WindowDays = 30
		}
		if p.WindowDays > maxWindowDays {
			p.WindowDays = maxWindowDays
		}
	case IntentTopCampaigns:
		if p.Limit < minLimit {
			p.Limit = defaultLimit
		}
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
		if !p.Metric.Valid() {
			p.Metric = domain.MetricConversions
		}
	}
	return p
}

var registry = map[Intent]Template{
	IntentCampaignPerformance: {
		Intent: IntentCampaignPerformance,
		Build: func(Params) (string, []any) {
			return `
				SELECT c.campaign_name,
				       c.platform,
				       SUM(dp.impressions) AS impressions,
				       SUM(dp.clicks) AS clicks,
				       SUM(dp.conversions) AS conversions,
				       ROUND(SUM(dp.clicks) * 100.0 / NULLIF(SUM(dp.impressions), 0), 2) AS ctr
				FROM daily_performance dp
				JOIN campaigns c ON dp.campaign_id = c.campaign_id
				GROUP BY c.campaign_name, c.platform
				ORDER BY impressions DESC`, nil
		},
	},
	IntentPlatformComparison: {
		Intent: IntentPlatformComparison,
		Build: func(Params) (string, []any) {
			return `
				SELECT c.platform,
				       SUM(dp.impressions) AS impressions,
				       SUM(dp.clicks) AS clicks,
				       SUM(dp.conversions) AS conversions,
				       ROUND(SUM(dp.clicks) * 100.0 / NULLIF(SUM(dp.impressions), 0), 2) AS ctr,
				       ROUND(SUM(dp.conversions) * 100.0 / NULLIF(SUM(dp.clicks), 0), 2) AS conversion_rate
				FROM daily_performance dp
				JOIN campaigns c ON dp.campaign_id = c.campaign_id
				GROUP BY c.platform
				ORDER BY impressions DESC`, nil
		},
	},
	IntentDailyTrend: {
		Intent: IntentDailyTrend,
		Build: func(p Params) (string, []any) {
			return `
				SELECT report_date,
				       SUM(impressions) AS impressions,
				       SUM(clicks) AS clicks,
				       SUM(conversions) AS conversions
				FROM daily_performance
				WHERE report_date >= CURRENT_DATE - $1::int
				GROUP BY report_date
				ORDER BY report_date`, []any{p.WindowDays}
		},
	},
	IntentTopCampaigns: {
		Intent: IntentTopCampaigns,
		Build: func(p Params) (string, []any) {
			col := p.Metric.Column()
			return fmt.Sprintf(`
				SELECT c.campaign_name,
				       c.platform,
				       SUM(dp.%s) AS %s
				FROM daily_performance dp
				JOIN campaigns c ON dp.campaign_id = c.campaign_id
				GROUP BY c.campaign_name, c.platform
				ORDER BY %s DESC
				LIMIT $1`, col, col, col), []any{p.Limit}
		},
	},
	IntentSummaryStats: {
		Intent: IntentSummaryStats,
		Build: func(Params) (string, []any) {
			return `
				SELECT COUNT(DISTINCT c.campaign_id) AS total_campaigns,
				       COUNT(DISTINCT c.platform) AS platforms,
				       COALESCE(SUM(dp.impressions), 0) AS total_impressions,
				       COALESCE(SUM(dp.clicks), 0) AS total_clicks,
				       COALESCE(SUM(dp.conversions), 0) AS total_conversions,
				       COALESCE(ROUND(SUM(dp.clicks) * 100.0 / NULLIF(SUM(dp.impressions), 0), 2), 0) AS avg_ctr
				FROM daily_performance dp
				JOIN campaigns c ON dp.campaign_id = c.campaign_id`, nil
		},
	},
}
