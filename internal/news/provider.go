// Package news provides the news provider: per-topic RSS aggregation with
// deduplication and recency ordering.
package news

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	"github.com/polypulse/backend/internal/cache"
	"github.com/polypulse/backend/internal/models"
	"github.com/rs/zerolog/log"
)

const (
	// allNewsCap bounds the merged corpus handed to callers.
	allNewsCap = 200

	defaultFeedTimeout = 15 * time.Second
)

// Provider fetches and normalizes news items from the topic feeds.
// Output is deduplicated by link and sorted most-recent-first, as the
// matching engine expects.
type Provider struct {
	http     *resty.Client
	parser   *gofeed.Parser
	topics   []models.Topic
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewProvider creates a provider over the default topic taxonomy.
func NewProvider(c *cache.Cache, ttl time.Duration, feedTimeout time.Duration) *Provider {
	if feedTimeout <= 0 {
		feedTimeout = defaultFeedTimeout
	}
	return &Provider{
		http: resty.New().
			SetTimeout(feedTimeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second),
		parser:   gofeed.NewParser(),
		topics:   models.DefaultTopics,
		cache:    c,
		cacheTTL: ttl,
	}
}

// SetTopics overrides the topic taxonomy. Used in tests.
func (p *Provider) SetTopics(topics []models.Topic) {
	p.topics = topics
}

// AllNews fetches every topic feed concurrently and returns the merged,
// deduplicated, recency-sorted corpus capped at 200 items. A failing feed
// is logged and skipped; it never fails the merge.
func (p *Provider) AllNews(ctx context.Context) ([]models.NewsItem, error) {
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	batches := make(map[string][]models.NewsItem, len(p.topics))

	for _, topic := range p.topics {
		wg.Add(1)
		go func(t models.Topic) {
			defer wg.Done()
			items, err := p.fetchTopic(ctx, t)
			if err != nil {
				log.Warn().Err(err).Str("topic", t.Slug).Msg("Feed fetch failed, skipping topic")
				return
			}
			mu.Lock()
			batches[t.Slug] = items
			mu.Unlock()
		}(topic)
	}
	wg.Wait()

	// Merge in taxonomy order so dedup keeps the first topic that
	// carried a link.
	var merged []models.NewsItem
	for _, topic := range p.topics {
		merged = append(merged, batches[topic.Slug]...)
	}

	merged = dedupeByLink(merged)
	sortByRecency(merged)
	if len(merged) > allNewsCap {
		merged = merged[:allNewsCap]
	}
	return merged, nil
}

// NewsByTopic fetches a single topic feed.
func (p *Provider) NewsByTopic(ctx context.Context, slug string) ([]models.NewsItem, error) {
	for _, topic := range p.topics {
		if topic.Slug != slug {
			continue
		}
		items, err := p.fetchTopic(ctx, topic)
		if err != nil {
			return nil, err
		}
		items = dedupeByLink(items)
		sortByRecency(items)
		return items, nil
	}
	return nil, fmt.Errorf("unknown topic: %s", slug)
}

// fetchTopic retrieves and parses one feed, serving from the cache window
// when possible.
func (p *Provider) fetchTopic(ctx context.Context, topic models.Topic) ([]models.NewsItem, error) {
	key := "polypulse:news:" + topic.Slug

	var cached []models.NewsItem
	if p.cache.GetJSON(ctx, key, &cached) {
		log.Debug().Str("topic", topic.Slug).Int("count", len(cached)).Msg("News served from cache")
		return cached, nil
	}

	resp, err := p.http.R().SetContext(ctx).Get(topic.FeedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("feed returned %d", resp.StatusCode())
	}

	feed, err := p.parser.ParseString(resp.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		if it.Title == "" || it.Link == "" {
			continue
		}
		item := models.NewsItem{
			ID:             models.NewsID(topic.Slug, it.Link),
			Title:          it.Title,
			ContentSnippet: it.Description,
			Link:           it.Link,
			Topic:          topic.Slug,
		}
		if it.PublishedParsed != nil {
			item.PubDate = *it.PublishedParsed
		}
		items = append(items, item)
	}

	log.Debug().Str("topic", topic.Slug).Int("count", len(items)).Msg("Fetched feed")

	p.cache.SetJSON(ctx, key, items, p.cacheTTL)
	return items, nil
}

// dedupeByLink keeps the first occurrence of each link, preserving order.
func dedupeByLink(items []models.NewsItem) []models.NewsItem {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		if _, ok := seen[item.Link]; ok {
			continue
		}
		seen[item.Link] = struct{}{}
		out = append(out, item)
	}
	return out
}

// sortByRecency orders items newest first. Items without a date sink to
// the end.
func sortByRecency(items []models.NewsItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PubDate.After(items[j].PubDate)
	})
}
