package assistant

import (
	"strconv"
	"strings"

	"github.com/midas/analytics/internal/domain"
)

// rule pairs a keyword set with an intent builder. Rules are evaluated
// top-down and the first match wins, so a question containing keywords
// from several rules always resolves to the highest-priority one. A rule
// with no keywords matches everything and terminates the waterfall.
type rule struct {
	keywords []string
	build    func(q string) (Intent, Params)
}

var rules = []rule{
	{
		keywords: []string{"compare", "platform", "meta", "google", "tiktok", "snapchat", "versus", "vs"},
		build: func(string) (Intent, Params) {
			return IntentPlatformComparison, Params{}
		},
	},
	{
		keywords: []string{"trend", "daily", "over time", "last week", "last month", "history"},
		build: func(q string) (Intent, Params) {
			return IntentDailyTrend, Params{WindowDays: trendWindow(q)}
		},
	},
	{
		keywords: []string{"top", "best", "highest", "most"},
		build: func(q string) (Intent, Params) {
			return IntentTopCampaigns, Params{Metric: rankingMetric(q), Limit: rankingLimit(q)}
		},
	},
	{
		keywords: []string{"summary", "overview", "total", "how many", "overall"},
		build: func(string) (Intent, Params) {
			return IntentSummaryStats, Params{}
		},
	},
	{
		keywords: []string{"campaign", "specific"},
		build: func(string) (Intent, Params) {
			return IntentCampaignPerformance, Params{}
		},
	},
	{
		// fallback: empty keyword set matches any question
		build: func(string) (Intent, Params) {
			return IntentCampaignPerformance, Params{}
		},
	},
}

// Classify maps a free-text question to an intent and its parameters.
// It is a pure function: case-insensitive keyword matching over an ordered
// rule list, deterministic for any input including the empty string.
func Classify(question string) (Intent, Params) {
	q := strings.ToLower(question)
	for _, r := range rules {
		if len(r.keywords) == 0 || containsAny(q, r.keywords) {
			return r.build(q)
		}
	}
	// unreachable: the last rule always matches
	return IntentCampaignPerformance, Params{}
}

// trendWindow extracts the time window in days for a daily-trend question.
func trendWindow(q string) int {
	switch {
	case strings.Contains(q, "week"):
		return 7
	case strings.Contains(q, "month"):
		return 30
	case strings.Contains(q, "90"), strings.Contains(q, "quarter"):
		return 90
	default:
		return 30
	}
}

// rankingMetric picks the metric a top-campaigns question ranks by.
// Conversions is the default when the question names no metric.
func rankingMetric(q string) domain.Metric {
	switch {
	case strings.Contains(q, "click"):
		return domain.MetricClicks
	case strings.Contains(q, "impression"):
		return domain.MetricImpressions
	default:
		return domain.MetricConversions
	}
}

// rankingLimit returns the first integer token in the question, or 5.
func rankingLimit(q string) int {
	for _, word := range strings.Fields(q) {
		if n, err := strconv.Atoi(word); err == nil {
			return n
		}
	}
	return 5
}

func containsAny(s string, substrs []string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}
