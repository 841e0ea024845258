package models

// Market represents a prediction market listing from Polymarket.
// Treated as an immutable snapshot for the duration of one matching pass;
// active/closed/liquidity filtering happens in the provider, never in the
// matching engine.
type Market struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Question    string `json:"question"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Tags preserve source order and may contain duplicates.
	Tags []string `json:"tags"`

	LiquidityNum float64 `json:"liquidity_num"`
	VolumeNum    float64 `json:"volume_num"`

	Active  bool   `json:"active"`
	Closed  bool   `json:"closed"`
	EndDate string `json:"end_date,omitempty"`
}

// MarketQuery describes the filters a market provider must apply before
// returning listings. The matching engine never re-applies them.
type MarketQuery struct {
	Limit        int
	Active       bool
	Closed       bool
	LiquidityMin float64
}

// TradeURL returns the Polymarket page for the market, tagged with the
// affiliate code when one is configured.
func (m *Market) TradeURL(affiliateCode string) string {
	u := "https://polymarket.com/market/" + m.Slug
	if affiliateCode != "" {
		u += "?via=" + affiliateCode
	}
	return u
}
