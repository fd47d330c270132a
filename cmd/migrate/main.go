// Command migrate creates the analytics schema and, with --seed, fills it
// with demo campaigns and 90 days of generated performance facts.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
	campaign_id   TEXT PRIMARY KEY,
	campaign_name TEXT NOT NULL,
	platform      TEXT NOT NULL,
	objective     TEXT,
	funnel_stage  TEXT
);

CREATE TABLE IF NOT EXISTS daily_performance (
	report_date  DATE NOT NULL,
	platform     TEXT NOT NULL,
	ad_id        TEXT NOT NULL,
	campaign_id  TEXT NOT NULL REFERENCES campaigns(campaign_id),
	impressions  BIGINT NOT NULL DEFAULT 0 CHECK (impressions >= 0),
	clicks       BIGINT NOT NULL DEFAULT 0 CHECK (clicks >= 0),
	conversions  BIGINT NOT NULL DEFAULT 0 CHECK (conversions >= 0),
	UNIQUE (report_date, platform, ad_id, campaign_id)
);

CREATE INDEX IF NOT EXISTS idx_daily_performance_date ON daily_performance (report_date);
CREATE INDEX IF NOT EXISTS idx_daily_performance_campaign ON daily_performance (campaign_id);
`

type seedCampaign struct {
	id          string
	name        string
	platform    string
	objective   string
	funnelStage string
}

var seedCampaigns = []seedCampaign{
	{"meta_prospecting", "Prospecting - Broad", "Meta", "CONVERSIONS", "Conversion"},
	{"meta_retargeting", "Retargeting - Site Visitors", "Meta", "CONVERSIONS", "Conversion"},
	{"meta_awareness", "Brand Awareness - Video", "Meta", "BRAND_AWARENESS", "Awareness"},
	{"google_search", "Search - Brand Terms", "Google", "CONVERSIONS", "Conversion"},
	{"google_display", "Display - In-Market", "Google", "TRAFFIC", "Consideration"},
	{"tiktok_spark", "Spark Ads - Creators", "TikTok", "BRAND_AWARENESS", "Awareness"},
	{"snap_stories", "Story Ads - Gen Z", "Snapchat", "TRAFFIC", "Consideration"},
}

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	seed := false
	for _, a := range os.Args[1:] {
		if a == "--seed" {
			seed = true
		}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping: %v", err)
	}
	log.Println("Connected to database")

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	log.Println("Schema applied")

	if !seed {
		return
	}
	if err := seedDemoData(db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("Demo data seeded")
}

func seedDemoData(db *sql.DB) error {
	for _, c := range seedCampaigns {
		if _, err := db.Exec(`
			INSERT INTO campaigns (campaign_id, campaign_name, platform, objective, funnel_stage)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (campaign_id) DO NOTHING
		`, c.id, c.name, c.platform, c.objective, c.funnelStage); err != nil {
			return fmt.Errorf("insert campaign %s: %w", c.id, err)
		}
	}

	rng := rand.New(rand.NewSource(42))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for day := 90; day >= 1; day-- {
		date := today.AddDate(0, 0, -day)
		for _, c := range seedCampaigns {
			for ad := 1; ad <= 3; ad++ {
				impressions := 1000 + rng.Int63n(49000)
				clicks := int64(float64(impressions) * (0.01 + rng.Float64()*0.04))
				conversions := int64(float64(clicks) * (0.02 + rng.Float64()*0.13))
				if _, err := db.Exec(`
					INSERT INTO daily_performance (report_date, platform, ad_id, campaign_id, impressions, clicks, conversions)
					VALUES ($1, $2, $3, $4, $5, $6, $7)
					ON CONFLICT (report_date, platform, ad_id, campaign_id) DO UPDATE SET
						impressions = EXCLUDED.impressions,
						clicks = EXCLUDED.clicks,
						conversions = EXCLUDED.conversions
				`, date, c.platform, fmt.Sprintf("%s_ad_%d", c.id, ad), c.id,
					impressions, clicks, conversions); err != nil {
					return fmt.Errorf("insert fact for %s on %s: %w", c.id, date.Format("2006-01-02"), err)
				}
			}
		}
	}
	return nil
}
