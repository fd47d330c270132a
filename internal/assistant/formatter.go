package assistant

import (
	"fmt"
	"strings"
)

const (
	emptyResultMessage = "I couldn't find any data matching your query. Please try rephrasing your question."

	// campaignPerformanceMaxRows caps the prose output; the full table is
	// still returned alongside it.
	campaignPerformanceMaxRows = 10
)

// FormatResponse renders a query outcome as chat prose. A *QueryError
// becomes an apology, an empty table becomes a fixed no-data message, and
// everything else goes through the per-intent renderer. The raw table is
// preserved by the caller; prose is never parsed back.
func FormatResponse(intent Intent, p Params, t Table, err error) string {
	if err != nil {
		return fmt.Sprintf("Sorry, I encountered an error: %s", err.Error())
	}
	if t.Empty() {
		return emptyResultMessage
	}

	switch intent {
	case IntentPlatformComparison:
		return formatPlatformComparison(t)
	case IntentDailyTrend:
		return formatDailyTrend(t)
	case IntentTopCampaigns:
		return formatTopCampaigns(p, t)
	case IntentSummaryStats:
		return formatSummaryStats(t)
	default:
		return formatCampaignPerformance(t)
	}
}

func formatPlatformComparison(t Table) string {
	var sb strings.Builder
	sb.WriteString("📊 **Platform Comparison**\n\n")
	for i := range t.Rows {
		sb.WriteString(fmt.Sprintf("**%s**\n", asString(t.Cell(i, "platform"))))
		sb.WriteString(fmt.Sprintf("- Impressions: %s\n", formatCount(asInt64(t.Cell(i, "impressions")))))
		sb.WriteString(fmt.Sprintf("- Clicks: %s\n", formatCount(asInt64(t.Cell(i, "clicks")))))
		sb.WriteString(fmt.Sprintf("- Conversions: %s\n", formatCount(asInt64(t.Cell(i, "conversions")))))
		sb.WriteString(fmt.Sprintf("- CTR: %.2f%%\n\n", asFloat(t.Cell(i, "ctr"))))
	}
	return sb.String()
}

func formatDailyTrend(t Table) string {
	var sb strings.Builder
	sb.WriteString("📈 **Daily Performance Trend**\n\n")

	first := asString(t.Cell(0, "report_date"))
	last := asString(t.Cell(len(t.Rows)-1, "report_date"))
	sb.WriteString(fmt.Sprintf("Showing data from %s to %s\n\n", first, last))

	var impressions, clicks, conversions int64
	for i := range t.Rows {
		impressions += asInt64(t.Cell(i, "impressions"))
		clicks += asInt64(t.Cell(i, "clicks"))
		conversions += asInt64(t.Cell(i, "conversions"))
	}
	sb.WriteString(fmt.Sprintf("- Total Impressions: %s\n", formatCount(impressions)))
	sb.WriteString(fmt.Sprintf("- Total Clicks: %s\n", formatCount(clicks)))
	sb.WriteString(fmt.Sprintf("- Total Conversions: %s\n", formatCount(conversions)))
	sb.WriteString(fmt.Sprintf("- Avg Daily Impressions: %s\n", formatCount(impressions/int64(len(t.Rows)))))
	return sb.String()
}

// formatTopCampaigns takes the ranking metric from the resolved params
// rather than sniffing it from the table's last column.
func formatTopCampaigns(p Params, t Table) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 **Top Campaigns by %s**\n\n", p.Metric.Label()))
	for i := range t.Rows {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1,
			asString(t.Cell(i, "campaign_name")), asString(t.Cell(i, "platform"))))
		sb.WriteString(fmt.Sprintf("   %s: %s\n\n", p.Metric.Label(),
			formatCount(asInt64(t.Cell(i, p.Metric.Column())))))
	}
	return sb.String()
}

func formatSummaryStats(t Table) string {
	var sb strings.Builder
	sb.WriteString("📋 **Overall Summary**\n\n")
	sb.WriteString(fmt.Sprintf("- Total Campaigns: %s\n", formatCount(asInt64(t.Cell(0, "total_campaigns")))))
	sb.WriteString(fmt.Sprintf("- Platforms: %s\n", formatCount(asInt64(t.Cell(0, "platforms")))))
	sb.WriteString(fmt.Sprintf("- Total Impressions: %s\n", formatCount(asInt64(t.Cell(0, "total_impressions")))))
	sb.WriteString(fmt.Sprintf("- Total Clicks: %s\n", formatCount(asInt64(t.Cell(0, "total_clicks")))))
	sb.WriteString(fmt.Sprintf("- Total Conversions: %s\n", formatCount(asInt64(t.Cell(0, "total_conversions")))))
	sb.WriteString(fmt.Sprintf("- Average CTR: %.2f%%\n", asFloat(t.Cell(0, "avg_ctr"))))
	return sb.String()
}

func formatCampaignPerformance(t Table) string {
	var sb strings.Builder
	sb.WriteString("📊 **Campaign Performance**\n\n")
	for i := range t.Rows {
		if i >= campaignPerformanceMaxRows {
			break
		}
		sb.WriteString(fmt.Sprintf("**%s** (%s)\n",
			asString(t.Cell(i, "campaign_name")), asString(t.Cell(i, "platform"))))
		sb.WriteString(fmt.Sprintf("- Impressions: %s\n", formatCount(asInt64(t.Cell(i, "impressions")))))
		sb.WriteString(fmt.Sprintf("- Clicks: %s\n", formatCount(asInt64(t.Cell(i, "clicks")))))
		sb.WriteString(fmt.Sprintf("- CTR: %.2f%%\n\n", asFloat(t.Cell(i, "ctr"))))
	}
	return sb.String()
}

// formatCount renders an integer with thousands separators: 1234567 -> "1,234,567".
func formatCount(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var sb strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(d)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}
