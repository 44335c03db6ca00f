// Package utils holds string helpers shared by the catalog backends.
package utils

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CleanText collapses runs of whitespace into one space and trims the ends
func CleanText(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// Spaced replaces every character in seps with a space and cleans the
// result, turning "The.Dark_Knight" into "The Dark Knight"
func Spaced(text, seps string) string {
	text = strings.Map(func(r rune) rune {
		if strings.ContainsRune(seps, r) {
			return ' '
		}
		return r
	}, text)
	return CleanText(text)
}

// DefaultString returns the first non-empty string
func DefaultString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
