// Package platforms defines the provider abstraction for ad platforms
// beyond Meta. Google, TikTok, and Snapchat are configuration stubs today:
// they carry credentials in config but have no integration built out, so
// their providers report ErrNotConfigured and the collector skips them.
package platforms

import (
	"context"
	"errors"
	"time"

	"github.com/midas/analytics/internal/config"
	"github.com/midas/analytics/internal/domain"
)

// ErrNotConfigured is returned by providers whose integration is not
// available (missing credentials or not implemented yet).
var ErrNotConfigured = errors.New("platform provider not configured")

// Provider fetches daily performance facts for one ad platform.
type Provider interface {
	Platform() domain.Platform
	FetchFacts(ctx context.Context, start, end time.Time) ([]domain.DailyPerformanceFact, error)
}

// stub is a placeholder provider for platforms without an integration.
type stub struct {
	platform domain.Platform
	enabled  bool
}

func (s *stub) Platform() domain.Platform { return s.platform }

func (s *stub) FetchFacts(context.Context, time.Time, time.Time) ([]domain.DailyPerformanceFact, error) {
	return nil, ErrNotConfigured
}

// Stubs builds the providers for the not-yet-integrated platforms from
// configuration.
func Stubs(cfg *config.Config) []Provider {
	return []Provider{
		&stub{platform: domain.PlatformGoogle, enabled: cfg.Google.Enabled},
		&stub{platform: domain.PlatformTikTok, enabled: cfg.TikTok.Enabled},
		&stub{platform: domain.PlatformSnapchat, enabled: cfg.Snapchat.Enabled},
	}
}
