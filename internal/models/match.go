package models

// ScoredMarket pairs a market with its relevance score against a news item.
// Score is a ranking heuristic in [0, 1], not a probability.
type ScoredMarket struct {
	Market Market  `json:"market"`
	Score  float64 `json:"score"`
}

// Match is the matching engine's output unit: one news item with its
// ranked top markets. Matches is ordered descending by score and is never
// empty; items with no market above the acceptance threshold are dropped
// before a Match is emitted.
type Match struct {
	News    NewsItem       `json:"news"`
	Matches []ScoredMarket `json:"matches"`
}

// TopScore returns the score of the best-ranked market.
func (m *Match) TopScore() float64 {
	if len(m.Matches) == 0 {
		return 0
	}
	return m.Matches[0].Score
}
