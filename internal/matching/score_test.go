package matching

import (
	"testing"
	"time"

	"github.com/polypulse/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestScoreExactKeywordOverlap(t *testing.T) {
	news := models.NewsItem{
		Title:   "Fed cuts interest rates amid inflation fears",
		PubDate: testNow.Add(-1 * time.Hour),
	}
	market := models.Market{
		Question:     "Will the Fed cut interest rates in Q4?",
		LiquidityNum: 20000,
	}

	score := Score(&news, &market, testNow)

	assert.Greater(t, score, 0.3)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreNoStemming(t *testing.T) {
	// "cuts" and "cut" are distinct tokens under simple tokenization.
	news := Tokenize("Fed cuts interest rates amid inflation fears")
	market := Tokenize("Will the Fed cut interest rates in Q4?")

	_, newsHasCuts := news["cuts"]
	_, marketHasCuts := market["cuts"]
	_, marketHasCut := market["cut"]

	assert.True(t, newsHasCuts)
	assert.False(t, marketHasCuts)
	assert.True(t, marketHasCut)
}

func TestScoreDisjointTopics(t *testing.T) {
	news := models.NewsItem{
		Title:   "Celebrity couple announces surprise engagement at gala",
		PubDate: testNow.Add(-30 * 24 * time.Hour),
	}
	market := models.Market{
		Question:     "Will the Federal Reserve raise interest rates this year?",
		LiquidityNum: 400,
	}

	score := Score(&news, &market, testNow)

	assert.LessOrEqual(t, score, 0.1)
}

func TestScoreBounded(t *testing.T) {
	pairs := []struct {
		news   models.NewsItem
		market models.Market
	}{
		{
			// Heavy keyword stacking would exceed 1.0 without the cap.
			news: models.NewsItem{
				Title:   "Bitcoin ethereum crypto etf election fed inflation war",
				PubDate: testNow,
				Topic:   "crypto",
			},
			market: models.Market{
				Question:     "Bitcoin ethereum crypto etf election fed inflation war",
				Tags:         []string{"Crypto"},
				LiquidityNum: 1000000,
			},
		},
		{
			news:   models.NewsItem{Title: ""},
			market: models.Market{Question: ""},
		},
	}

	for _, p := range pairs {
		score := Score(&p.news, &p.market, testNow)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestScoreBoostKeywordMonotonic(t *testing.T) {
	news := models.NewsItem{
		Title:   "Bitcoin price surges past record",
		PubDate: testNow.Add(-30 * 24 * time.Hour),
	}
	without := models.Market{Question: "Price surges expected before yearend"}
	with := models.Market{Question: "Bitcoin price surges expected before yearend"}

	assert.GreaterOrEqual(t,
		Score(&news, &with, testNow),
		Score(&news, &without, testNow))
}

func TestScoreRecencyDecay(t *testing.T) {
	market := models.Market{Question: "Spot bitcoin etf approved before December?"}

	fresh := models.NewsItem{Title: "Bitcoin etf decision", PubDate: testNow}
	stale := models.NewsItem{Title: "Bitcoin etf decision", PubDate: testNow.Add(-8 * 24 * time.Hour)}

	freshScore := Score(&fresh, &market, testNow)
	staleScore := Score(&stale, &market, testNow)

	// The recency term is the only difference: full 0.1 vs zero.
	assert.InDelta(t, 0.1, freshScore-staleScore, 1e-9)
}

func TestScoreMissingPubDate(t *testing.T) {
	market := models.Market{Question: "Spot bitcoin etf approved before December?"}

	undated := models.NewsItem{Title: "Bitcoin etf decision"}
	stale := models.NewsItem{Title: "Bitcoin etf decision", PubDate: testNow.Add(-30 * 24 * time.Hour)}

	// A missing date degrades to zero recency, same as an old item.
	assert.Equal(t,
		Score(&stale, &market, testNow),
		Score(&undated, &market, testNow))
}

func TestScoreLiquidityBoost(t *testing.T) {
	news := models.NewsItem{Title: "quarterly widget shipments"}

	low := models.Market{Question: "unrelated question entirely", LiquidityNum: 0}
	mid := models.Market{Question: "unrelated question entirely", LiquidityNum: 5000}
	high := models.Market{Question: "unrelated question entirely", LiquidityNum: 10000}
	huge := models.Market{Question: "unrelated question entirely", LiquidityNum: 1000000}

	assert.InDelta(t, 0.0, Score(&news, &low, testNow), 1e-9)
	assert.InDelta(t, 0.05, Score(&news, &mid, testNow), 1e-9)
	assert.InDelta(t, 0.1, Score(&news, &high, testNow), 1e-9)
	// Boost saturates at 0.1.
	assert.InDelta(t, 0.1, Score(&news, &huge, testNow), 1e-9)
}

func TestScoreTagBoost(t *testing.T) {
	news := models.NewsItem{Title: "quarterly widget shipments", Topic: "crypto"}

	tagged := models.Market{Question: "unrelated question entirely", Tags: []string{"Crypto Markets"}}
	untagged := models.Market{Question: "unrelated question entirely", Tags: []string{"Sports"}}

	assert.InDelta(t, 0.15, Score(&news, &tagged, testNow), 1e-9)
	assert.InDelta(t, 0.0, Score(&news, &untagged, testNow), 1e-9)
}

func TestSearchableText(t *testing.T) {
	full := models.Market{Question: "Q?", Title: "T", Description: "D"}
	sparse := models.Market{Question: "Q?"}

	assert.Equal(t, "Q? T D", SearchableText(&full))
	assert.Equal(t, "Q?", SearchableText(&sparse))
}
