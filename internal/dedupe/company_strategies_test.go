package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "identical", a: "Acme Incorporated", b: "Acme Incorporated", want: 1},
		{name: "case insensitive", a: "ACME", b: "acme", want: 1},
		{name: "both empty", a: "", b: "", want: 1},
		{name: "one empty", a: "Acme", b: "", want: 0},
		{name: "single typo", a: "Acme Incorporated", b: "Acme Incorporatd", want: 1 - 1.0/17},
		{name: "abbreviation is far", a: "Acme Inc", b: "Acme Incorporated", want: 1 - 9.0/17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, nameSimilarity(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, nameSimilarity(tt.b, tt.a), 1e-9, "similarity is symmetric")
		})
	}
}

func TestNameSimilarityFuzzyThreshold(t *testing.T) {
	threshold := DefaultPolicy().FuzzyNameThreshold

	// A one-character typo passes; a legal-suffix variant does not.
	assert.Greater(t, nameSimilarity("Acme Incorporated", "Acme Incorporatd"), threshold)
	assert.Less(t, nameSimilarity("Acme Inc", "Acme Incorporated"), threshold)
}

func TestContainsToken(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{name: "whole token inside", haystack: "Acme Holdings LLC", needle: "Acme", want: true},
		{name: "multi token run", haystack: "The Acme Holdings Group", needle: "acme holdings", want: true},
		{name: "substring of a token", haystack: "Acmeta Systems", needle: "Acme", want: false},
		{name: "punctuation splits tokens", haystack: "Acme, Inc.", needle: "inc", want: true},
		{name: "tokens out of order", haystack: "Holdings Acme", needle: "acme holdings", want: false},
		{name: "empty needle", haystack: "Acme", needle: "", want: false},
		{name: "needle longer than haystack", haystack: "Acme", needle: "Acme Holdings", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsToken(tt.haystack, tt.needle))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"acme", "inc"}, tokenize("Acme, Inc."))
	assert.Equal(t, []string{"a1", "b2"}, tokenize("A1-B2"))
	assert.Empty(t, tokenize("  ...  "))
}
