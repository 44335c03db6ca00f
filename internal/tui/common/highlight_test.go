package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchedRunes(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []int
	}{
		{"substring ignores case", "The Matrix", "mat", []int{4, 5, 6}},
		{"surrounding space is trimmed", "Dune", " du ", []int{0, 1}},
		{"wide runes count as one", "千と千尋の神隠し", "千尋", []int{2, 3}},
		{"empty query", "Dune", "", nil},
		{"no match", "Dune", "xyz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchedRunes(tt.text, tt.query))
		})
	}
}

func TestMatchedRunes_Fuzzy(t *testing.T) {
	got := MatchedRunes("Breaking Bad", "bkb")
	assert.Len(t, got, 3)
	assert.Equal(t, 0, got[0])
}
