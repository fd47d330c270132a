package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/midas/analytics/internal/config"
	"github.com/midas/analytics/internal/pkg/httpretry"
)

const defaultBaseURL = "https://graph.facebook.com"

// Client is the Meta Marketing API client. When no access token is
// configured (or live data is disabled) it falls back to the mock
// generator so the collector and dashboard still have data to work with.
type Client struct {
	baseURL      string
	apiVersion   string
	accessToken  string
	accountIDs   []string
	accountNames map[string]string
	live         bool
	httpClient   httpretry.HTTPDoer
}

// NewClient creates a client from configuration.
func NewClient(cfg config.MetaConfig) *Client {
	return &Client{
		baseURL:      defaultBaseURL,
		apiVersion:   cfg.APIVersion,
		accessToken:  cfg.AccessToken,
		accountIDs:   cfg.AdAccounts,
		accountNames: cfg.AccountNames,
		live:         cfg.UseLiveData && cfg.AccessToken != "",
		httpClient: httpretry.New(&http.Client{
			Timeout: 60 * time.Second,
		}, 3),
	}
}

// SetHTTPClient swaps the transport, useful for tests.
func (c *Client) SetHTTPClient(doer httpretry.HTTPDoer) { c.httpClient = doer }

// SetBaseURL points the client at a different API host, useful for tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

// Live reports whether the client talks to the real API.
func (c *Client) Live() bool { return c.live }

// AccountIDs returns the configured ad accounts.
func (c *Client) AccountIDs() []string { return c.accountIDs }

// AccountName returns the friendly name for an account id, falling back
// to the id itself.
func (c *Client) AccountName(accountID string) string {
	if name, ok := c.accountNames[accountID]; ok {
		return name
	}
	return accountID
}

// FetchInsights returns ad-level daily insight rows for the account over
// [start, end]. level is one of account, campaign, adset, ad; breakdown
// may name an entry of BreakdownFields or be empty.
func (c *Client) FetchInsights(ctx context.Context, accountID string, start, end time.Time, level, breakdown string) ([]Insight, error) {
	if !c.live {
		return c.mockInsights(accountID, start, end), nil
	}

	params := url.Values{}
	params.Set("fields", strings.Join(InsightFields, ","))
	params.Set("time_range", fmt.Sprintf(`{"since":"%s","until":"%s"}`,
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	params.Set("level", level)
	params.Set("time_increment", "1")
	if cols, ok := BreakdownFields[breakdown]; ok {
		params.Set("breakdowns", strings.Join(cols, ","))
	}
	params.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/%s/%s/insights?%s", c.baseURL, c.apiVersion, accountID, params.Encode())

	var out []Insight
	for endpoint != "" {
		var page insightsResponse
		if err := c.getJSON(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("fetch insights for %s: %w", accountID, err)
		}
		out = append(out, page.Data...)
		endpoint = page.Paging.Next
	}
	return out, nil
}

// FetchCampaigns returns the account's campaigns.
func (c *Client) FetchCampaigns(ctx context.Context, accountID string) ([]Campaign, error) {
	if !c.live {
		return c.mockCampaigns(accountID), nil
	}

	params := url.Values{}
	params.Set("fields", "id,name,status,effective_status,objective")
	params.Set("access_token", c.accessToken)
	endpoint := fmt.Sprintf("%s/%s/%s/campaigns?%s", c.baseURL, c.apiVersion, accountID, params.Encode())

	var out []Campaign
	for endpoint != "" {
		var page campaignsResponse
		if err := c.getJSON(ctx, endpoint, &page); err != nil {
			return nil, fmt.Errorf("fetch campaigns for %s: %w", accountID, err)
		}
		out = append(out, page.Data...)
		endpoint = page.Paging.Next
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
