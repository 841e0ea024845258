// Package config provides configuration management for PolyPulse.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	// Redis settings (optional; empty addr disables caching)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Provider settings
	NewsCacheTTL   time.Duration
	MarketCacheTTL time.Duration
	FeedTimeout    time.Duration

	// Affiliate settings
	AffiliateCode string

	// Server settings
	HTTPAddr string
	Debug    bool
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		// Redis
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Providers
		NewsCacheTTL:   getEnvDuration("NEWS_CACHE_TTL", 5*time.Minute),
		MarketCacheTTL: getEnvDuration("MARKET_CACHE_TTL", 2*time.Minute),
		FeedTimeout:    getEnvDuration("FEED_TIMEOUT", 15*time.Second),

		// Affiliate
		AffiliateCode: getEnv("AFFILIATE_CODE", ""),

		// Server
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Debug:    getEnvBool("DEBUG", false),
	}

	return cfg, nil
}

// Validate checks if required configuration is present.
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR not set, provider caching disabled")
	}
	if c.AffiliateCode == "" {
		log.Warn().Msg("AFFILIATE_CODE not set, redirects will be untracked")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
