package domain

// Totals are whole-dataset delivery sums used by the dashboard KPI cards
// and the assistant's data-summary context.
type Totals struct {
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
	Conversions int64 `json:"conversions"`
}

// CTR returns the aggregate click-through rate percentage, 0 when there
// are no impressions.
func (t Totals) CTR() float64 {
	if t.Impressions == 0 {
		return 0
	}
	return float64(t.Clicks) / float64(t.Impressions) * 100
}

// ConversionRate returns conversions as a percentage of clicks, 0 when
// there are no clicks.
func (t Totals) ConversionRate() float64 {
	if t.Clicks == 0 {
		return 0
	}
	return float64(t.Conversions) / float64(t.Clicks) * 100
}
