package assistant

import (
	"context"
	"log"
	"time"

	"github.com/midas/analytics/internal/cache"
	"github.com/midas/analytics/internal/domain"
)

// CampaignReader is the slice of the campaign repository the assistant needs.
type CampaignReader interface {
	List(ctx context.Context) ([]domain.Campaign, error)
}

// PerformanceReader is the slice of the performance repository the
// assistant needs for the data-summary context.
type PerformanceReader interface {
	DateRange(ctx context.Context) (start, end time.Time, err error)
	Totals(ctx context.Context) (domain.Totals, error)
}

// Assistant runs the question pipeline: classify, execute, format, append
// to the conversation. One question is one single-pass transformation;
// failures are reported in the reply, never retried.
type Assistant struct {
	exec       *Executor
	campaigns  CampaignReader
	facts      PerformanceReader
	cache      *cache.Cache
	summaryTTL time.Duration
}

// New creates an assistant. The cache may be nil-backed; summary lookups
// then always hit the database.
func New(exec *Executor, campaigns CampaignReader, facts PerformanceReader, c *cache.Cache, summaryTTL time.Duration) *Assistant {
	return &Assistant{
		exec:       exec,
		campaigns:  campaigns,
		facts:      facts,
		cache:      c,
		summaryTTL: summaryTTL,
	}
}

// Ask processes one user question against the conversation: both the user
// turn and the assistant turn are appended, and the assistant turn is
// returned. Every question yields a reply; the worst case is an apology
// rendered like any other answer.
func (a *Assistant) Ask(ctx context.Context, conv *Conversation, question string) Turn {
	conv.Append(Turn{Role: RoleUser, Content: question})

	intent, params := Classify(question)
	params = sanitize(intent, params)

	table, err := a.exec.Execute(ctx, intent, params)
	if err != nil {
		log.Printf("[assistant] %s query failed: %v", intent, err)
	}

	reply := Turn{
		Role:      RoleAssistant,
		Content:   FormatResponse(intent, params, table, err),
		Timestamp: time.Now(),
	}
	if err == nil && !table.Empty() {
		reply.Table = &table
	}
	conv.Append(reply)
	return reply
}

// DataSummary is the sidebar context shown next to the chat: what data is
// available to ask about.
type DataSummary struct {
	CampaignCount int           `json:"campaign_count"`
	Platforms     []string      `json:"platforms"`
	DateStart     string        `json:"date_start"`
	DateEnd       string        `json:"date_end"`
	Totals        domain.Totals `json:"totals"`
}

const summaryCacheKey = "assistant:data_summary"

// Summary returns the data-summary context, served from the TTL cache when
// fresh. Stale reads within the TTL window are accepted; cache failures
// fall through to the database.
func (a *Assistant) Summary(ctx context.Context) (DataSummary, error) {
	var s DataSummary
	if ok, err := a.cache.GetJSON(ctx, summaryCacheKey, &s); err != nil {
		log.Printf("[assistant] summary cache read failed: %v", err)
	} else if ok {
		return s, nil
	}

	campaigns, err := a.campaigns.List(ctx)
	if err != nil {
		return DataSummary{}, err
	}
	s.CampaignCount = len(campaigns)
	seen := make(map[domain.Platform]bool)
	for _, c := range campaigns {
		if !seen[c.Platform] {
			seen[c.Platform] = true
			s.Platforms = append(s.Platforms, string(c.Platform))
		}
	}

	start, end, err := a.facts.DateRange(ctx)
	if err != nil {
		return DataSummary{}, err
	}
	if !start.IsZero() {
		s.DateStart = start.Format("2006-01-02")
		s.DateEnd = end.Format("2006-01-02")
	}

	if s.Totals, err = a.facts.Totals(ctx); err != nil {
		return DataSummary{}, err
	}

	if err := a.cache.SetJSON(ctx, summaryCacheKey, s, a.summaryTTL); err != nil {
		log.Printf("[assistant] summary cache write failed: %v", err)
	}
	return s, nil
}
