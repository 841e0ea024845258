// PolyPulse - news headlines matched to prediction markets.
// Aggregates topic feeds, scores them against Polymarket listings, and
// serves ranked matches with tracked affiliate redirects.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/polypulse/backend/internal/api"
	"github.com/polypulse/backend/internal/cache"
	"github.com/polypulse/backend/internal/config"
	"github.com/polypulse/backend/internal/matching"
	"github.com/polypulse/backend/internal/news"
	"github.com/polypulse/backend/internal/polymarket"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("PolyPulse - Starting matching service")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Optional provider cache
	var providerCache *cache.Cache
	if cfg.RedisAddr != "" {
		providerCache, err = cache.New(cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			providerCache = nil
		} else {
			defer providerCache.Close()
			log.Info().Str("addr", cfg.RedisAddr).Msg("Provider cache initialized")
		}
	}

	// Providers
	newsProvider := news.NewProvider(providerCache, cfg.NewsCacheTTL, cfg.FeedTimeout)
	log.Info().Msg("News provider initialized")

	marketProvider := polymarket.NewClientWithCache(providerCache, cfg.MarketCacheTTL)
	log.Info().Msg("Polymarket client initialized")

	// Matching engine
	engine := matching.NewEngine(newsProvider, marketProvider)
	log.Info().Msg("Matching engine initialized")

	// API server
	handlers := api.NewHandlers(engine, newsProvider, marketProvider, cfg.AffiliateCode)
	apiServer := api.NewServer(handlers, cfg.HTTPAddr)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("PolyPulse running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	if err := apiServer.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}

	log.Info().Msg("PolyPulse stopped")
}
