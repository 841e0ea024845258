// Package polymarket provides the prediction-market provider backed by
// Polymarket's Gamma API.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/polypulse/backend/internal/cache"
	"github.com/polypulse/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const GammaAPIBase = "https://gamma-api.polymarket.com"

// Client fetches market listings from the Gamma API, optionally through a
// TTL'd cache window. Listings are filtered per query before they reach the
// matching engine.
type Client struct {
	gamma    *resty.Client
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewClient creates an uncached Polymarket client.
func NewClient() *Client {
	return NewClientWithCache(nil, 0)
}

// NewClientWithCache creates a Polymarket client that serves repeated
// queries from the cache for the given window. A nil cache disables it.
func NewClientWithCache(c *cache.Cache, ttl time.Duration) *Client {
	return &Client{
		gamma: resty.New().
			SetBaseURL(GammaAPIBase).
			SetTimeout(30 * time.Second).
			SetRetryCount(3).
			SetRetryWaitTime(1 * time.Second),
		cache:    c,
		cacheTTL: ttl,
	}
}

// SetBaseURL overrides the Gamma API base URL. Used in tests.
func (c *Client) SetBaseURL(base string) {
	c.gamma.SetBaseURL(base)
}

// gammaMarket is the wire shape of a Gamma API market.
type gammaMarket struct {
	ID             string       `json:"id"`
	Slug           string       `json:"slug"`
	Question       string       `json:"question"`
	GroupItemTitle string       `json:"groupItemTitle"`
	Description    string       `json:"description"`
	LiquidityNum   float64      `json:"liquidityNum"`
	VolumeNum      float64      `json:"volumeNum"`
	Active         bool         `json:"active"`
	Closed         bool         `json:"closed"`
	EndDate        string       `json:"endDate"`
	Events         []gammaEvent `json:"events"`
}

type gammaEvent struct {
	Tags []gammaTag `json:"tags"`
}

type gammaTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Markets retrieves markets matching the query. Implements
// matching.MarketProvider.
func (c *Client) Markets(ctx context.Context, q models.MarketQuery) ([]models.Market, error) {
	key := fmt.Sprintf("polypulse:markets:%d:%t:%t:%.0f", q.Limit, q.Active, q.Closed, q.LiquidityMin)

	var cached []models.Market
	if c.cache.GetJSON(ctx, key, &cached) {
		log.Debug().Int("count", len(cached)).Msg("Markets served from cache")
		return cached, nil
	}

	params := url.Values{}
	params.Set("active", strconv.FormatBool(q.Active))
	params.Set("closed", strconv.FormatBool(q.Closed))
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.LiquidityMin > 0 {
		params.Set("liquidity_num_min", strconv.FormatFloat(q.LiquidityMin, 'f', -1, 64))
	}

	log.Debug().
		Str("endpoint", "/markets").
		Str("params", params.Encode()).
		Msg("Fetching markets from Gamma API")

	resp, err := c.gamma.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/markets")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("markets API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var raw []gammaMarket
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse markets: %w", err)
	}

	markets := make([]models.Market, 0, len(raw))
	for _, gm := range raw {
		// The upstream does not always honor the liquidity filter, so the
		// floor is enforced again here. The engine never re-filters.
		if gm.LiquidityNum < q.LiquidityMin {
			continue
		}
		markets = append(markets, convertMarket(gm))
	}

	log.Debug().Int("count", len(markets)).Msg("Fetched markets")

	c.cache.SetJSON(ctx, key, markets, c.cacheTTL)
	return markets, nil
}

// convertMarket maps a Gamma wire market to the internal model. Tag order
// follows the source, duplicates included.
func convertMarket(gm gammaMarket) models.Market {
	var tags []string
	for _, ev := range gm.Events {
		for _, tag := range ev.Tags {
			tags = append(tags, tag.Label)
		}
	}

	return models.Market{
		ID:           gm.ID,
		Slug:         gm.Slug,
		Question:     gm.Question,
		Title:        gm.GroupItemTitle,
		Description:  gm.Description,
		Tags:         tags,
		LiquidityNum: gm.LiquidityNum,
		VolumeNum:    gm.VolumeNum,
		Active:       gm.Active,
		Closed:       gm.Closed,
		EndDate:      gm.EndDate,
	}
}
