package assistant

import (
	"strings"
	"testing"

	"github.com/midas/analytics/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve_TotalOverIntents(t *testing.T) {
	for _, intent := range []Intent{
		IntentCampaignPerformance,
		IntentPlatformComparison,
		IntentDailyTrend,
		IntentTopCampaigns,
		IntentSummaryStats,
	} {
		tmpl, p := Resolve(intent, Params{})
		assert.NotNil(t, tmpl.Build, "intent %s has no template", intent)
		query, _ := tmpl.Build(p)
		assert.NotEmpty(t, query)
	}
}

func TestSanitize_LimitClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 5},
		{0, 5},
		{1, 1},
		{50, 50},
		{999, 50},
	}
	for _, tt := range tests {
		_, p := Resolve(IntentTopCampaigns, Params{Limit: tt.in, Metric: domain.MetricClicks})
		assert.Equal(t, tt.want, p.Limit, "limit %d", tt.in)
	}
}

func TestSanitize_MetricFallback(t *testing.T) {
	_, p := Resolve(IntentTopCampaigns, Params{Limit: 5, Metric: domain.Metric("clicks; DROP TABLE campaigns--")})
	assert.Equal(t, domain.MetricConversions, p.Metric)

	tmpl, p := Resolve(IntentTopCampaigns, p)
	query, args := tmpl.Build(p)
	assert.NotContains(t, query, "DROP")
	assert.Contains(t, query, "SUM(dp.conversions)")
	assert.Equal(t, []any{5}, args)
}

func TestSanitize_WindowClamping(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 30},
		{0, 30},
		{7, 7},
		{365, 365},
		{4000, 365},
	}
	for _, tt := range tests {
		_, p := Resolve(IntentDailyTrend, Params{WindowDays: tt.in})
		assert.Equal(t, tt.want, p.WindowDays, "window %d", tt.in)
	}
}

// Only the metric column name is ever interpolated; every other parameter
// must be bound as a placeholder.
func TestTemplates_ParametersAreBound(t *testing.T) {
	tmpl, p := Resolve(IntentDailyTrend, Params{WindowDays: 7})
	query, args := tmpl.Build(p)
	assert.Contains(t, query, "$1")
	assert.Equal(t, []any{7}, args)
	assert.NotContains(t, query, "7 days")

	tmpl, p = Resolve(IntentTopCampaigns, Params{Limit: 3, Metric: domain.MetricClicks})
	query, args = tmpl.Build(p)
	assert.Contains(t, query, "LIMIT $1")
	assert.Equal(t, []any{3}, args)
	assert.False(t, strings.Contains(query, "LIMIT 3"))
}

func TestTemplates_DivisionByZeroGuards(t *testing.T) {
	for _, intent := range []Intent{IntentCampaignPerformance, IntentPlatformComparison, IntentSummaryStats} {
		tmpl, p := Resolve(intent, Params{})
		query, _ := tmpl.Build(p)
		assert.Contains(t, query, "NULLIF", "intent %s must guard division", intent)
	}
}
