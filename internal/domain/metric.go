package domain

// Metric is a closed enumeration of the rankable performance metrics.
// It is decided entirely inside the assistant's classifier so that query
// construction never sees an arbitrary string from user text.
type Metric string

const (
	MetricImpressions Metric = "impressions"
	MetricClicks      Metric = "clicks"
	MetricConversions Metric = "conversions"
)

// Valid reports whether m is one of the known metrics.
func (m Metric) Valid() bool {
	switch m {
	case MetricImpressions, MetricClicks, MetricConversions:
		return true
	}
	return false
}

// Column returns the daily_performance column backing the metric.
// Only valid metrics may be interpolated into SQL; callers must check
// Valid first.
func (m Metric) Column() string { return string(m) }

// Label returns the human-facing name used in formatted responses.
func (m Metric) Label() string {
	switch m {
	case MetricImpressions:
		return "Impressions"
	case MetricClicks:
		return "Clicks"
	case MetricConversions:
		return "Conversions"
	}
	return string(m)
}
