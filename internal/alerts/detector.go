// Package alerts flags anomalies in the daily delivery trend by comparing
// the most recent day against the trailing window's baseline.
package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/midas/analytics/internal/repository/postgres"
)

// Severity buckets an alert for the dashboard.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert describes one anomalous metric on the latest reported day.
type Alert struct {
	Metric    string    `json:"metric"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	Value     float64   `json:"value"`
	Baseline  float64   `json:"baseline"`
	Deviation float64   `json:"deviation"`
	Date      time.Time `json:"date"`
}

// Detector compares the latest day's metrics to the trailing mean.
// A metric more than WarnSigma standard deviations from the mean is a
// warning, more than CritSigma a critical alert.
type Detector struct {
	MinPoints int
	WarnSigma float64
	CritSigma float64
}

// NewDetector creates a detector with the default thresholds.
func NewDetector() *Detector {
	return &Detector{MinPoints: 7, WarnSigma: 2, CritSigma: 3}
}

// Detect evaluates a daily trend (oldest first) and returns alerts for the
// most recent day. With fewer than MinPoints days there is no baseline and
// no alerts are produced.
func (d *Detector) Detect(points []postgres.TrendPoint) []Alert {
	if len(points) < d.MinPoints {
		return nil
	}

	latest := points[len(points)-1]
	history := points[:len(points)-1]

	series := map[string]struct {
		history []float64
		value   float64
	}{
		"impressions": {metricSeries(history, func(p postgres.TrendPoint) float64 { return float64(p.Impressions) }), float64(latest.Impressions)},
		"clicks":      {metricSeries(history, func(p postgres.TrendPoint) float64 { return float64(p.Clicks) }), float64(latest.Clicks)},
		"conversions": {metricSeries(history, func(p postgres.TrendPoint) float64 { return float64(p.Conversions) }), float64(latest.Conversions)},
		"ctr":         {metricSeries(history, ctr), ctr(latest)},
	}

	var out []Alert
	for _, name := range []string{"impressions", "clicks", "conversions", "ctr"} {
		s := series[name]
		mean, std := meanStd(s.history)
		if std == 0 {
			continue
		}
		z := (s.value - mean) / std
		if math.Abs(z) < d.WarnSigma {
			continue
		}
		sev := SeverityWarning
		if math.Abs(z) >= d.CritSigma {
			sev = SeverityCritical
		}
		direction := "above"
		if z < 0 {
			direction = "below"
		}
		out = append(out, Alert{
			Metric:    name,
			Severity:  sev,
			Message:   fmt.Sprintf("%s is %.1f standard deviations %s the %d-day baseline", name, math.Abs(z), direction, len(history)),
			Value:     s.value,
			Baseline:  mean,
			Deviation: z,
			Date:      latest.Date,
		})
	}
	return out
}

func ctr(p postgres.TrendPoint) float64 {
	if p.Impressions == 0 {
		return 0
	}
	return float64(p.Clicks) / float64(p.Impressions) * 100
}

func metricSeries(points []postgres.TrendPoint, f func(postgres.TrendPoint) float64) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = f(p)
	}
	return out
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(ss / float64(len(xs)))
}
