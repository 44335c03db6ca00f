package common

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// MatchedRunes returns the rune positions of text that match query. A
// case-insensitive substring wins; otherwise the characters of a fuzzy
// match are returned. Nil means no match.
func MatchedRunes(text, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" || text == "" {
		return nil
	}

	if start := indexFold(text, query); start >= 0 {
		indices := make([]int, utf8.RuneCountInString(query))
		for i := range indices {
			indices[i] = start + i
		}
		return indices
	}

	matches := fuzzy.Find(query, []string{text})
	if len(matches) == 0 {
		return nil
	}
	return matches[0].MatchedIndexes
}

// indexFold is the rune position of the first case-insensitive occurrence
// of query in text, or -1
func indexFold(text, query string) int {
	runes := []rune(text)
	n := utf8.RuneCountInString(query)
	for i := 0; i+n <= len(runes); i++ {
		if strings.EqualFold(string(runes[i:i+n]), query) {
			return i
		}
	}
	return -1
}

// Highlight renders text with the characters matching query in match style
func Highlight(text, query string, base, match lipgloss.Style) string {
	indices := MatchedRunes(text, query)
	if len(indices) == 0 {
		return base.Render(text)
	}
	return lipgloss.StyleRunes(text, indices, match.Inherit(base), base)
}
