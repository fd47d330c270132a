package platforms

import (
	"context"
	"testing"
	"time"

	"github.com/midas/analytics/internal/config"
	"github.com/midas/analytics/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubs_CoverNonMetaPlatforms(t *testing.T) {
	providers := Stubs(&config.Config{})
	require.Len(t, providers, 3)

	want := []domain.Platform{domain.PlatformGoogle, domain.PlatformTikTok, domain.PlatformSnapchat}
	for i, p := range providers {
		assert.Equal(t, want[i], p.Platform())

		facts, err := p.FetchFacts(context.Background(), time.Now().AddDate(0, 0, -7), time.Now())
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Nil(t, facts)
	}
}
