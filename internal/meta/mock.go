package meta

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"time"
)

// Demo campaign roster used when no live credentials are configured. The
// objective doubles as the funnel hint on the dashboard.
var mockCampaignNames = []struct {
	name      string
	objective string
}{
	{"Prospecting - Broad", "CONVERSIONS"},
	{"Retargeting - Site Visitors", "CONVERSIONS"},
	{"Brand Awareness - Video", "BRAND_AWARENESS"},
	{"Lead Gen - Catalog", "LEAD_GENERATION"},
}

const mockAdsPerCampaign = 3

// mockInsights generates ad-level daily rows for the window. Rows are
// deterministic per (account, date, ad), so repeated collector cycles
// upsert identical values instead of churning the fact table.
func (c *Client) mockInsights(accountID string, start, end time.Time) []Insight {
	var out []Insight
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format("2006-01-02")
		for ci, mc := range mockCampaignNames {
			campaignID := fmt.Sprintf("%s_campaign_%d", accountID, ci+1)
			for ai := 0; ai < mockAdsPerCampaign; ai++ {
				adID := fmt.Sprintf("%s_ad_%d", campaignID, ai+1)
				rng := rand.New(rand.NewSource(seed(accountID, date, adID)))

				impressions := 1000 + rng.Int63n(49000)
				clicks := int64(float64(impressions) * (0.01 + rng.Float64()*0.04))
				conversions := int64(float64(clicks) * (0.02 + rng.Float64()*0.13))

				ctr := 0.0
				if impressions > 0 {
					ctr = float64(clicks) / float64(impressions) * 100
				}

				out = append(out, Insight{
					AccountID:    accountID,
					AccountName:  c.AccountName(accountID),
					CampaignID:   campaignID,
					CampaignName: mc.name,
					AdsetID:      fmt.Sprintf("%s_adset_%d", campaignID, ai%2+1),
					AdsetName:    fmt.Sprintf("AdSet %d", ai%2+1),
					AdID:         adID,
					AdName:       fmt.Sprintf("Ad %d", ai+1),
					Impressions:  strconv.FormatInt(impressions, 10),
					Reach:        strconv.FormatInt(int64(float64(impressions)*(0.7+rng.Float64()*0.25)), 10),
					Frequency:    strconv.FormatFloat(1.1+rng.Float64()*2.4, 'f', 2, 64),
					Clicks:       strconv.FormatInt(clicks, 10),
					UniqueClicks: strconv.FormatInt(int64(float64(clicks)*(0.85+rng.Float64()*0.13)), 10),
					CTR:          strconv.FormatFloat(ctr, 'f', 2, 64),
					Conversions:  strconv.FormatInt(conversions, 10),
					DateStart:    date,
					DateStop:     date,
				})
			}
		}
	}
	return out
}

// mockCampaigns generates the demo campaign roster for an account.
func (c *Client) mockCampaigns(accountID string) []Campaign {
	out := make([]Campaign, 0, len(mockCampaignNames))
	for ci, mc := range mockCampaignNames {
		out = append(out, Campaign{
			ID:              fmt.Sprintf("%s_campaign_%d", accountID, ci+1),
			Name:            mc.name,
			Status:          "ACTIVE",
			EffectiveStatus: "ACTIVE",
			Objective:       mc.objective,
		})
	}
	return out
}

func seed(parts ...string) int64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
	}
	return int64(h.Sum64())
}
