// Package ingest runs the background collector that pulls ad-level
// insights from the configured platforms, rolls them up to daily facts,
// and upserts them into the local store.
package ingest

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/midas/analytics/internal/domain"
	"github.com/midas/analytics/internal/meta"
	"github.com/midas/analytics/internal/platforms"
)

// CampaignWriter is the campaign repository slice the collector needs.
type CampaignWriter interface {
	Upsert(ctx context.Context, c domain.Campaign) error
}

// FactWriter is the performance repository slice the collector needs.
type FactWriter interface {
	Upsert(ctx context.Context, f domain.DailyPerformanceFact) error
}

// Collector periodically ingests insights for a trailing window. Cycles
// are idempotent: facts are keyed by their natural key, so overlapping
// windows simply rewrite the same rows.
type Collector struct {
	metaClient *meta.Client
	stubs      []platforms.Provider
	campaigns  CampaignWriter
	facts      FactWriter

	interval time.Duration
	lookback int
}

// NewCollector creates a collector.
func NewCollector(metaClient *meta.Client, stubs []platforms.Provider, campaigns CampaignWriter, facts FactWriter, interval time.Duration, lookbackDays int) *Collector {
	if interval <= 0 {
		interval = time.Hour
	}
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	return &Collector{
		metaClient: metaClient,
		stubs:      stubs,
		campaigns:  campaigns,
		facts:      facts,
		interval:   interval,
		lookback:   lookbackDays,
	}
}

// Start runs an immediate cycle and then one per interval until the
// context is canceled.
func (c *Collector) Start(ctx context.Context) {
	log.Printf("[collector] starting (interval %s, lookback %dd)", c.interval, c.lookback)
	c.runCycle(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[collector] stopped")
			return
		case <-ticker.C:
			c.runCycle(ctx)
		}
	}
}

// RunOnce executes a single collection cycle; used by tests and one-shot
// invocations.
func (c *Collector) RunOnce(ctx context.Context) { c.runCycle(ctx) }

func (c *Collector) runCycle(ctx context.Context) {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.AddDate(0, 0, -(c.lookback - 1))

	for _, accountID := range c.metaClient.AccountIDs() {
		if err := c.collectMetaAccount(ctx, accountID, start, end); err != nil {
			log.Printf("[collector] meta account %s: %v", accountID, err)
		}
	}

	for _, p := range c.stubs {
		if _, err := p.FetchFacts(ctx, start, end); err != nil {
			if errors.Is(err, platforms.ErrNotConfigured) {
				continue
			}
			log.Printf("[collector] %s: %v", p.Platform(), err)
		}
	}
}

func (c *Collector) collectMetaAccount(ctx context.Context, accountID string, start, end time.Time) error {
	campaigns, err := c.metaClient.FetchCampaigns(ctx, accountID)
	if err != nil {
		return err
	}
	for _, mc := range campaigns {
		if err := c.campaigns.Upsert(ctx, domain.Campaign{
			ID:          mc.ID,
			Name:        mc.Name,
			Platform:    domain.PlatformMeta,
			Objective:   mc.Objective,
			FunnelStage: funnelStage(mc.Objective),
		}); err != nil {
			return err
		}
	}

	insights, err := c.metaClient.FetchInsights(ctx, accountID, start, end, "ad", "")
	if err != nil {
		return err
	}

	facts := RollUp(insights)
	for _, f := range facts {
		if err := c.facts.Upsert(ctx, f); err != nil {
			return err
		}
	}
	log.Printf("[collector] account %s: %d campaigns, %d facts (%s..%s)",
		accountID, len(campaigns), len(facts), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return nil
}

// RollUp aggregates ad-level insight rows into daily performance facts,
// summing rows that share the fact natural key (breakdown rows collapse
// into one fact per ad per day).
func RollUp(insights []meta.Insight) []domain.DailyPerformanceFact {
	type key struct {
		date       string
		adID       string
		campaignID string
	}

	agg := make(map[key]*domain.DailyPerformanceFact)
	var order []key
	for _, in := range insights {
		date, err := time.Parse("2006-01-02", in.DateStart)
		if err != nil {
			log.Printf("[collector] skipping insight with bad date %q", in.DateStart)
			continue
		}
		k := key{date: in.DateStart, adID: in.AdID, campaignID: in.CampaignID}
		f, ok := agg[k]
		if !ok {
			f = &domain.DailyPerformanceFact{
				ReportDate: date,
				Platform:   domain.PlatformMeta,
				AdID:       in.AdID,
				CampaignID: in.CampaignID,
			}
			agg[k] = f
			order = append(order, k)
		}
		f.Impressions += parseCount(in.Impressions)
		f.Clicks += parseCount(in.Clicks)
		f.Conversions += parseCount(in.Conversions)
	}

	out := make([]domain.DailyPerformanceFact, 0, len(order))
	for _, k := range order {
		out = append(out, *agg[k])
	}
	return out
}

// parseCount parses a Graph API numeric string, treating anything
// unparsable as 0.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// funnelStage maps a campaign objective to the funnel stage shown on the
// dashboard.
func funnelStage(objective string) string {
	switch objective {
	case "BRAND_AWARENESS", "REACH", "VIDEO_VIEWS":
		return "Awareness"
	case "TRAFFIC", "ENGAGEMENT", "LEAD_GENERATION":
		return "Consideration"
	case "CONVERSIONS", "CATALOG_SALES", "STORE_TRAFFIC":
		return "Conversion"
	default:
		return "Consideration"
	}
}
