// Package assistant implements the Data Assistant: a rule-based intent
// classifier over free-text questions, a registry of vetted SQL templates,
// an executor that turns a classified question into a tabular result, and a
// formatter that renders that result as prose for the chat surface.
package assistant

import "github.com/midas/analytics/internal/domain"

// Intent is the classified purpose of a user's question. Each intent maps
// to exactly one query template in the registry.
type Intent int

const (
	// IntentCampaignPerformance is also the fallback when no keyword matches.
	IntentCampaignPerformance Intent = iota
	IntentPlatformComparison
	IntentDailyTrend
	IntentTopCampaigns
	IntentSummaryStats
)

// String returns the registry name of the intent.
func (i Intent) String() string {
	switch i {
	case IntentPlatformComparison:
		return "platform_comparison"
	case IntentDailyTrend:
		return "daily_trend"
	case IntentTopCampaigns:
		return "top_campaigns"
	case IntentSummaryStats:
		return "summary_stats"
	default:
		return "campaign_performance"
	}
}

// Params carries the parameters extracted by the classifier. Only the
// fields relevant to the intent are set: WindowDays for DailyTrend,
// Limit and Metric for TopCampaigns.
type Params struct {
	WindowDays int           `json:"window_days,omitempty"`
	Limit      int           `json:"limit,omitempty"`
	Metric     domain.Metric `json:"metric,omitempty"`
}
