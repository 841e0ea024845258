package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/polypulse/backend/internal/matching"
	"github.com/polypulse/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Handlers holds the API handlers.
type Handlers struct {
	engine        *matching.Engine
	news          matching.NewsProvider
	markets       matching.MarketProvider
	affiliateCode string
}

// NewHandlers creates new API handlers.
func NewHandlers(engine *matching.Engine, news matching.NewsProvider, markets matching.MarketProvider, affiliateCode string) *Handlers {
	return &Handlers{
		engine:        engine,
		news:          news,
		markets:       markets,
		affiliateCode: affiliateCode,
	}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func getLimit(r *http.Request, defaultLimit int) int {
	limit := defaultLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return limit
}

// HealthCheck reports service liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetMatches returns the full-corpus news-to-market matches. The engine
// returns the complete sorted list; truncation happens here.
func (h *Handlers) GetMatches(w http.ResponseWriter, r *http.Request) {
	limit := getLimit(r, 20)

	matches := h.engine.MatchAll(r.Context())
	if len(matches) > limit {
		matches = matches[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// SearchMatches returns matches for news items containing the query.
func (h *Handlers) SearchMatches(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "Query is required")
		return
	}
	topic := r.URL.Query().Get("topic")
	limit := getLimit(r, 20)

	matches := h.engine.Search(r.Context(), query, topic)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"query":   query,
		"count":   len(matches),
	})
}

// GetNews returns the current news corpus, optionally scoped to a topic.
func (h *Handlers) GetNews(w http.ResponseWriter, r *http.Request) {
	var (
		items []models.NewsItem
		err   error
	)
	if topic := r.URL.Query().Get("topic"); topic != "" {
		items, err = h.news.NewsByTopic(r.Context(), topic)
	} else {
		items, err = h.news.AllNews(r.Context())
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch news")
		return
	}
	if items == nil {
		items = []models.NewsItem{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"news":  items,
		"count": len(items),
	})
}

// GetMarkets returns the filtered market listing used for matching.
func (h *Handlers) GetMarkets(w http.ResponseWriter, r *http.Request) {
	limit := getLimit(r, 50)

	markets, err := h.markets.Markets(r.Context(), models.MarketQuery{
		Limit:        limit,
		Active:       true,
		Closed:       false,
		LiquidityMin: 500,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch markets")
		return
	}
	if markets == nil {
		markets = []models.Market{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"markets": markets,
		"count":   len(markets),
	})
}

// GetTopics returns the topic taxonomy.
func (h *Handlers) GetTopics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"topics": models.DefaultTopics,
		"count":  len(models.DefaultTopics),
	})
}

// RedirectToMarket sends the visitor to the market's trading page with
// the affiliate code attached, logging the click.
func (h *Handlers) RedirectToMarket(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "Slug is required")
		return
	}

	m := models.Market{Slug: slug}
	target := m.TradeURL(h.affiliateCode)

	log.Info().
		Str("slug", slug).
		Str("referer", r.Referer()).
		Msg("Affiliate click")

	http.Redirect(w, r, target, http.StatusFound)
}
