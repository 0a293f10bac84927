package search

import "strings"

// Queries about anything time-sensitive get one web search before the
// completion call. Pure substring match over the last user turn; replacing
// this with intent classification would change observable behavior.
var triggerKeywords = []string{
	"current", "latest", "recent", "today", "now", "news", "update",
	"what is happening", "what happened", "when did", "stock price",
	"weather", "score", "election", "president", "prime minister",
	"covid", "war", "economy", "market", "trending", "2024", "2025",
}

func NeedsSearch(text string) bool {
	lowerText := strings.ToLower(text)
	for _, keyword := range triggerKeywords {
		if strings.Contains(lowerText, keyword) {
			return true
		}
	}
	return false
}
