// Package models defines the core data structures for PolyPulse.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// NewsItem represents a single headline pulled from an external feed.
// Items are immutable once created; each refresh cycle supersedes the
// previous batch rather than updating it.
type NewsItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	ContentSnippet string    `json:"content_snippet,omitempty"`
	Link           string    `json:"link"`
	PubDate        time.Time `json:"pub_date"`
	Topic          string    `json:"topic,omitempty"`
}

// NewsID derives a stable, topic-qualified identifier from an item's link.
func NewsID(topic, link string) string {
	sum := sha256.Sum256([]byte(link))
	id := hex.EncodeToString(sum[:])[:16]
	if topic == "" {
		return id
	}
	return topic + "-" + id
}
