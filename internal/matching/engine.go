package matching

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/polypulse/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// acceptThreshold is the minimum score a market must exceed to count
	// as a match.
	acceptThreshold = 0.1

	// maxMatchesPerItem caps the ranked markets returned per news item.
	maxMatchesPerItem = 3

	// maxNewsPerPass caps how many news items one corpus pass scores.
	// The provider already sorts most-recent-first.
	maxNewsPerPass = 50

	// scoreBand is the tolerance within which two top scores are treated
	// as tied and ordered by news recency instead.
	scoreBand = 0.1

	marketFetchLimit   = 200
	marketLiquidityMin = 500
)

// NewsProvider supplies deduplicated, recency-sorted news items.
type NewsProvider interface {
	AllNews(ctx context.Context) ([]models.NewsItem, error)
	NewsByTopic(ctx context.Context, slug string) ([]models.NewsItem, error)
}

// MarketProvider supplies prediction markets matching the given filters.
type MarketProvider interface {
	Markets(ctx context.Context, q models.MarketQuery) ([]models.Market, error)
}

// Engine scores news items against prediction markets. Providers are
// injected so tests can substitute fakes, and the clock is injectable to
// keep the recency term reproducible.
type Engine struct {
	news    NewsProvider
	markets MarketProvider
	now     func() time.Time
}

// NewEngine creates a matching engine using the real clock.
func NewEngine(news NewsProvider, markets MarketProvider) *Engine {
	return NewEngineWithClock(news, markets, time.Now)
}

// NewEngineWithClock creates a matching engine with a fixed clock source.
func NewEngineWithClock(news NewsProvider, markets MarketProvider, now func() time.Time) *Engine {
	return &Engine{news: news, markets: markets, now: now}
}

// MatchItem scores every market in the corpus against one news item and
// returns the best candidates: score above the acceptance threshold,
// ordered descending, at most three.
func (e *Engine) MatchItem(item models.NewsItem, markets []models.Market) []models.ScoredMarket {
	now := e.now()

	var scored []models.ScoredMarket
	for i := range markets {
		s := Score(&item, &markets[i], now)
		if s <= acceptThreshold {
			continue
		}
		scored = append(scored, models.ScoredMarket{Market: markets[i], Score: s})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > maxMatchesPerItem {
		scored = scored[:maxMatchesPerItem]
	}
	return scored
}

// MatchCorpus runs the per-item matcher over a pre-supplied corpus and
// orders the results. Only items that produced at least one match are
// emitted.
func (e *Engine) MatchCorpus(news []models.NewsItem, markets []models.Market) []models.Match {
	if len(news) == 0 || len(markets) == 0 {
		return []models.Match{}
	}

	if len(news) > maxNewsPerPass {
		news = news[:maxNewsPerPass]
	}

	results := make([]models.Match, 0, len(news))
	for _, item := range news {
		matches := e.MatchItem(item, markets)
		if len(matches) == 0 {
			continue
		}
		results = append(results, models.Match{News: item, Matches: matches})
	}

	// Two-tier ordering: score descending, but top scores within the
	// band are treated as tied and broken by news recency.
	sort.SliceStable(results, func(i, j int) bool {
		si, sj := results[i].TopScore(), results[j].TopScore()
		if math.Abs(si-sj) <= scoreBand {
			return results[i].News.PubDate.After(results[j].News.PubDate)
		}
		return si > sj
	})

	return results
}

// MatchAll fetches both corpora and returns the full ordered match set.
// Provider failures degrade to an empty corpus; callers never see an
// error. Result truncation is the caller's job.
func (e *Engine) MatchAll(ctx context.Context) []models.Match {
	var (
		wg      sync.WaitGroup
		news    []models.NewsItem
		markets []models.Market
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		news = e.fetchNews(ctx, "")
	}()
	go func() {
		defer wg.Done()
		markets = e.fetchMarkets(ctx)
	}()
	wg.Wait()

	return e.MatchCorpus(news, markets)
}

// Search narrows the news corpus to items containing the query as a
// case-insensitive substring of title + snippet, then matches against the
// full market corpus.
func (e *Engine) Search(ctx context.Context, query, topic string) []models.Match {
	news := e.fetchNews(ctx, topic)

	q := strings.ToLower(query)
	filtered := news[:0:0]
	for _, item := range news {
		haystack := strings.ToLower(item.Title + " " + item.ContentSnippet)
		if strings.Contains(haystack, q) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return []models.Match{}
	}

	return e.MatchCorpus(filtered, e.fetchMarkets(ctx))
}

// fetchNews is the single degradation boundary for the news side: any
// provider error is logged and becomes an empty corpus.
func (e *Engine) fetchNews(ctx context.Context, topic string) []models.NewsItem {
	var (
		items []models.NewsItem
		err   error
	)
	if topic != "" {
		items, err = e.news.NewsByTopic(ctx, topic)
	} else {
		items, err = e.news.AllNews(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("News fetch failed, using empty corpus")
		return nil
	}
	return items
}

// fetchMarkets is the single degradation boundary for the market side.
func (e *Engine) fetchMarkets(ctx context.Context) []models.Market {
	markets, err := e.markets.Markets(ctx, models.MarketQuery{
		Limit:        marketFetchLimit,
		Active:       true,
		Closed:       false,
		LiquidityMin: marketLiquidityMin,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Market fetch failed, using empty corpus")
		return nil
	}
	return markets
}
