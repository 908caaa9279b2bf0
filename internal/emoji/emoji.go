// Package emoji locates emoji grapheme clusters in text.
package emoji

import (
	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"
)

// Match is one emoji occurrence with its byte span.
type Match struct {
	Emoji string
	Start int
	End   int
}

// FindFunc reports emoji occurrences in source order.
type FindFunc func(text string) []Match

// Find returns every emoji grapheme cluster in text, left to right.
// Multi-rune sequences (skin tones, ZWJ families) count as one match.
func Find(text string) []Match {
	var out []Match
	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		cluster := graphemes.Str()
		if _, err := gomoji.GetInfo(cluster); err != nil {
			continue
		}
		start, end := graphemes.Positions()
		out = append(out, Match{Emoji: cluster, Start: start, End: end})
	}
	return out
}
