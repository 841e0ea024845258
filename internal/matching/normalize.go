// Package matching implements the news-to-market relevance engine:
// keyword tokenization, pair scoring, and corpus-level match selection.
package matching

import (
	"strings"
	"unicode"
)

// stopwords are common English function words excluded from token sets.
// Words of length <= 2 are dropped before this check, so entries like
// "a", "an", "is" never reach the lookup.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"the", "and", "but", "for", "nor", "yet",
		"are", "was", "were", "been", "being", "has", "have", "had",
		"does", "did", "doing", "will", "would", "could", "should",
		"shall", "may", "might", "must", "can", "cannot",
		"with", "from", "into", "through", "over", "under", "about",
		"after", "before", "between", "during", "above", "below",
		"this", "that", "these", "those", "its", "their", "they",
		"them", "his", "her", "him", "she", "you", "your", "yours",
		"our", "ours", "who", "whom", "whose", "what", "when",
		"where", "which", "why", "how", "than", "then", "else",
		"there", "here", "all", "any", "both", "each", "more",
		"most", "other", "some", "such", "only", "own", "same",
		"too", "very", "just", "not", "out", "off",
	} {
		stopwords[w] = struct{}{}
	}
}

// Tokenize converts raw free text into a comparable token set: lowercase,
// replace anything that is not a letter or digit with a space, split on
// whitespace, and drop short tokens and stopwords. Duplicates collapse and
// order is discarded. Pure function.
func Tokenize(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	tokens := make(map[string]struct{})
	for _, w := range strings.Fields(b.String()) {
		if len(w) <= 2 {
			continue
		}
		if _, ok := stopwords[w]; ok {
			continue
		}
		tokens[w] = struct{}{}
	}
	return tokens
}
