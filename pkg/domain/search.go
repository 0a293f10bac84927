package domain

type SearchSource struct {
	Title string
	URL   string
}

// SearchResult is the answer-plus-sources shape returned by the web search
// provider. Answer may be empty when the provider has no inline answer.
type SearchResult struct {
	Answer  string
	Sources []SearchSource
}
