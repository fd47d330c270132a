// Package config loads service configuration from a YAML file, a local
// .env file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Meta     MetaConfig     `yaml:"meta"`
	Google   StubConfig     `yaml:"google"`
	TikTok   StubConfig     `yaml:"tiktok"`
	Snapchat StubConfig     `yaml:"snapchat"`
	Polling  PollingConfig  `yaml:"polling"`
	Cache    CacheConfig    `yaml:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds cache backend settings. Redis is optional; with an
// empty address the service runs with caching disabled.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// MetaConfig holds Meta Marketing API credentials and account selection.
// With no access token the client serves generated demo data instead.
type MetaConfig struct {
	AccessToken  string            `yaml:"access_token"`
	APIVersion   string            `yaml:"api_version"`
	AdAccounts   []string          `yaml:"ad_accounts"`
	AccountNames map[string]string `yaml:"account_names"`
	UseLiveData  bool              `yaml:"use_live_data"`
}

// StubConfig holds credentials for platforms whose integrations are not
// built out yet (Google, TikTok, Snapchat).
type StubConfig struct {
	Enabled     bool   `yaml:"enabled"`
	AccessToken string `yaml:"access_token"`
	AccountID   string `yaml:"account_id"`
}

// PollingConfig controls the background insights collector.
type PollingConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
	LookbackDays    int `yaml:"lookback_days"`
}

// CacheConfig controls TTLs for the coarse result caches. Classification
// and query execution are never cached; only the data-summary context and
// dashboard aggregates are.
type CacheConfig struct {
	SummaryTTLMinutes   int `yaml:"summary_ttl_minutes"`
	DashboardTTLMinutes int `yaml:"dashboard_ttl_minutes"`
}

// Load reads configuration from the given YAML file (if present), applies
// environment variable overrides, and fills in defaults. A missing config
// file is not an error; the environment alone is enough to run.
func Load(path string) (*Config, error) {
	// Best effort: a .env file is a local dev convenience
	_ = godotenv.Load()

	cfg := &Config{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("META_ACCESS_TOKEN"); v != "" {
		c.Meta.AccessToken = v
	}
	if v := os.Getenv("META_AD_ACCOUNTS"); v != "" {
		c.Meta.AdAccounts = c.Meta.AdAccounts[:0]
		for _, acc := range strings.Split(v, ",") {
			if acc = strings.TrimSpace(acc); acc != "" {
				c.Meta.AdAccounts = append(c.Meta.AdAccounts, acc)
			}
		}
	}
	if v := os.Getenv("META_AD_ACCOUNT_ID"); v != "" && len(c.Meta.AdAccounts) == 0 {
		c.Meta.AdAccounts = []string{v}
	}
	if v := os.Getenv("USE_LIVE_META_DATA"); v != "" {
		c.Meta.UseLiveData = strings.EqualFold(v, "true")
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Meta.APIVersion == "" {
		c.Meta.APIVersion = "v18.0"
	}
	if c.Polling.IntervalMinutes <= 0 {
		c.Polling.IntervalMinutes = 60
	}
	if c.Polling.LookbackDays <= 0 {
		c.Polling.LookbackDays = 7
	}
	if c.Cache.SummaryTTLMinutes <= 0 {
		c.Cache.SummaryTTLMinutes = 60
	}
	if c.Cache.DashboardTTLMinutes <= 0 {
		c.Cache.DashboardTTLMinutes = 10
	}
}

// PollInterval returns the collector interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Polling.IntervalMinutes) * time.Minute
}

// SummaryTTL returns the data-summary cache TTL.
func (c *Config) SummaryTTL() time.Duration {
	return time.Duration(c.Cache.SummaryTTLMinutes) * time.Minute
}

// DashboardTTL returns the dashboard aggregate cache TTL.
func (c *Config) DashboardTTL() time.Duration {
	return time.Duration(c.Cache.DashboardTTLMinutes) * time.Minute
}
