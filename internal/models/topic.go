package models

// Topic represents a content topic in the fixed taxonomy. Every news item
// is fetched under a topic, and the topic slug drives the tag boost when it
// appears inside a market's tags.
type Topic struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	FeedURL string `json:"-"`
	Order   int    `json:"order"`
}

// DefaultTopics is the fixed topic taxonomy.
var DefaultTopics = []Topic{
	{Slug: "politics", Name: "Politics", FeedURL: "https://news.google.com/rss/headlines/section/topic/POLITICS?hl=en-US&gl=US&ceid=US:en", Order: 1},
	{Slug: "economy", Name: "Economy", FeedURL: "https://news.google.com/rss/headlines/section/topic/BUSINESS?hl=en-US&gl=US&ceid=US:en", Order: 2},
	{Slug: "crypto", Name: "Crypto", FeedURL: "https://news.google.com/rss/search?q=crypto+OR+bitcoin&hl=en-US&gl=US&ceid=US:en", Order: 3},
	{Slug: "tech", Name: "Tech", FeedURL: "https://news.google.com/rss/headlines/section/topic/TECHNOLOGY?hl=en-US&gl=US&ceid=US:en", Order: 4},
	{Slug: "geopolitics", Name: "Geopolitics", FeedURL: "https://news.google.com/rss/search?q=geopolitics+OR+conflict&hl=en-US&gl=US&ceid=US:en", Order: 5},
	{Slug: "sports", Name: "Sports", FeedURL: "https://news.google.com/rss/headlines/section/topic/SPORTS?hl=en-US&gl=US&ceid=US:en", Order: 6},
	{Slug: "world", Name: "World", FeedURL: "https://news.google.com/rss/headlines/section/topic/WORLD?hl=en-US&gl=US&ceid=US:en", Order: 7},
	{Slug: "health", Name: "Health", FeedURL: "https://news.google.com/rss/headlines/section/topic/HEALTH?hl=en-US&gl=US&ceid=US:en", Order: 8},
}

// GetTopicBySlug returns a topic by its slug, or nil if unknown.
func GetTopicBySlug(slug string) *Topic {
	for _, t := range DefaultTopics {
		if t.Slug == slug {
			return &t
		}
	}
	return nil
}
