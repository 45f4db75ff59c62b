package llmclient

import (
	"strings"
	"unicode/utf8"
)

// EstimateTokens gives a rough token count for usage accounting.
// It takes the larger of the word count and a four-runes-per-token estimate.
func EstimateTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	runes := utf8.RuneCountInString(text) / 4
	if runes > words {
		return runes
	}
	if words == 0 {
		return 1
	}
	return words
}
