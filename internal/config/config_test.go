package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "", cfg.RedisAddr)
	assert.Equal(t, 5*time.Minute, cfg.NewsCacheTTL)
	assert.Equal(t, 2*time.Minute, cfg.MarketCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.FeedTimeout)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NEWS_CACHE_TTL", "90s")
	t.Setenv("AFFILIATE_CODE", "polypulse")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 90*time.Second, cfg.NewsCacheTTL)
	assert.Equal(t, "polypulse", cfg.AffiliateCode)
	assert.True(t, cfg.Debug)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("NEWS_CACHE_TTL", "not-a-duration")
	t.Setenv("DEBUG", "not-a-bool")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 5*time.Minute, cfg.NewsCacheTTL)
	assert.False(t, cfg.Debug)
}

func TestValidateAlwaysPasses(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())
}
