// Package meta is the Meta Marketing API client: campaign metadata and
// ad-level insight rows for configured ad accounts. Without an access
// token it serves deterministic generated demo data so the rest of the
// system can run against a realistic dataset.
package meta

// InsightFields is the column set requested from the insights endpoint.
// Cost and spend metrics are deliberately excluded.
var InsightFields = []string{
	"account_id",
	"account_name",
	"campaign_id",
	"campaign_name",
	"adset_id",
	"adset_name",
	"ad_id",
	"ad_name",
	"impressions",
	"reach",
	"frequency",
	"clicks",
	"unique_clicks",
	"ctr",
	"conversions",
	"actions",
	"action_values",
	"date_start",
	"date_stop",
}

// BreakdownFields maps a breakdown name to the API's breakdown columns.
var BreakdownFields = map[string][]string{
	"age_gender": {"age", "gender"},
	"placement":  {"publisher_platform", "platform_position"},
	"device":     {"device_platform"},
	"country":    {"country"},
	"region":     {"region"},
}

// Insight is one row from the insights endpoint. Numeric fields arrive as
// strings from the Graph API and are kept that way until aggregation.
type Insight struct {
	AccountID    string `json:"account_id"`
	AccountName  string `json:"account_name"`
	CampaignID   string `json:"campaign_id"`
	CampaignName string `json:"campaign_name"`
	AdsetID      string `json:"adset_id"`
	AdsetName    string `json:"adset_name"`
	AdID         string `json:"ad_id"`
	AdName       string `json:"ad_name"`
	Impressions  string `json:"impressions"`
	Reach        string `json:"reach"`
	Frequency    string `json:"frequency"`
	Clicks       string `json:"clicks"`
	UniqueClicks string `json:"unique_clicks"`
	CTR          string `json:"ctr"`
	Conversions  string `json:"conversions"`
	DateStart    string `json:"date_start"`
	DateStop     string `json:"date_stop"`
}

// Campaign is one row from the campaigns endpoint.
type Campaign struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
	Objective       string `json:"objective"`
}

type insightsResponse struct {
	Data   []Insight `json:"data"`
	Paging paging    `json:"paging"`
}

type campaignsResponse struct {
	Data   []Campaign `json:"data"`
	Paging paging     `json:"paging"`
}

type paging struct {
	Next string `json:"next"`
}
