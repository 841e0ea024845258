package matching

import (
	"math"
	"strings"
	"time"

	"github.com/polypulse/backend/internal/models"
)

// Scoring weights. The final score is the sum of all terms, capped at 1.0.
const (
	keywordBoost    = 0.2
	recencyWeight   = 0.1
	recencyWindow   = 7 * 24 * time.Hour
	liquidityWeight = 0.1
	liquidityScale  = 10000.0
	tagBoost        = 0.15
)

// boostKeywords are curated domain terms whose presence in both the news
// and the market text adds extra score beyond plain token overlap.
var boostKeywords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// politics / elections
		"election", "elections", "president", "presidential", "congress",
		"senate", "vote", "voter", "ballot", "primary", "nominee",
		"impeachment", "trump", "biden", "republican", "democrat",
		"governor", "legislation", "shutdown",
		// economics / fed policy
		"fed", "rate", "rates", "interest", "inflation", "recession",
		"gdp", "tariff", "tariffs", "unemployment", "treasury", "cpi",
		"stimulus", "deficit", "powell",
		// geopolitics / conflict
		"war", "ceasefire", "invasion", "sanctions", "nato", "ukraine",
		"russia", "china", "taiwan", "iran", "israel", "nuclear",
		"missile", "treaty", "strike",
		// natural disasters
		"hurricane", "earthquake", "wildfire", "flood", "tornado",
		"drought",
		// public health
		"pandemic", "outbreak", "virus", "vaccine", "covid", "epidemic",
		// crypto
		"bitcoin", "btc", "ethereum", "eth", "crypto", "blockchain",
		"etf", "stablecoin", "solana", "halving",
		// legal / judicial
		"indictment", "verdict", "lawsuit", "ruling", "supreme", "court",
		"conviction", "appeal", "subpoena",
		// technology
		"openai", "chatgpt", "nvidia", "apple", "google", "microsoft",
		"tesla", "spacex", "launch", "chip", "merger", "acquisition",
		"ipo",
	} {
		boostKeywords[w] = struct{}{}
	}
}

// SearchableText concatenates a market's free-text fields into one matching
// signal. Missing optional fields contribute nothing.
func SearchableText(m *models.Market) string {
	parts := make([]string, 0, 3)
	for _, s := range []string{m.Question, m.Title, m.Description} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Score computes the relevance of a market to a news item at the given
// time. Deterministic for fixed inputs and a fixed now.
func Score(n *models.NewsItem, m *models.Market, now time.Time) float64 {
	newsTokens := Tokenize(n.Title + " " + n.ContentSnippet)
	marketTokens := Tokenize(SearchableText(m))

	// Token overlap ratio, the dominant term.
	overlap := 0
	boosted := 0
	for tok := range newsTokens {
		if _, ok := marketTokens[tok]; !ok {
			continue
		}
		overlap++
		if _, ok := boostKeywords[tok]; ok {
			boosted++
		}
	}
	denom := len(newsTokens)
	if len(marketTokens) > denom {
		denom = len(marketTokens)
	}
	if denom < 1 {
		denom = 1
	}
	score := float64(overlap) / float64(denom)

	// Curated keyword boost.
	score += float64(boosted) * keywordBoost

	// Linear recency decay over a 7-day window. A missing pubDate simply
	// contributes nothing rather than dropping the item.
	if !n.PubDate.IsZero() {
		age := now.Sub(n.PubDate)
		if age < recencyWindow {
			score += (1 - float64(age)/float64(recencyWindow)) * recencyWeight
		}
	}

	// Liquidity boost.
	score += math.Min(m.LiquidityNum/liquidityScale, 1) * liquidityWeight

	// Tag boost: the news topic appearing inside any market tag.
	if n.Topic != "" {
		topic := strings.ToLower(n.Topic)
		for _, tag := range m.Tags {
			if strings.Contains(strings.ToLower(tag), topic) {
				score += tagBoost
				break
			}
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
