package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

const defaultBaseURL = "https://api.tavily.com"

type client struct {
	token   string
	baseURL string
	hc      *http.Client
}

func NewClient(token string) *client {
	return &client{
		token:   token,
		baseURL: defaultBaseURL,
		hc:      &http.Client{},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(token, baseURL string) *client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

func (c *client) Configured() bool { return c.token != "" }

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"results"`
}

// Search issues one synchronous search call: depth "basic", inline answer,
// up to 5 results.
func (c *client) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:        c.token,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    5,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, response: %s", resp.StatusCode, string(bodyBytes))
	}

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decoding response data: %w", err)
	}

	result := &domain.SearchResult{Answer: searchResp.Answer}
	for _, r := range searchResp.Results {
		result.Sources = append(result.Sources, domain.SearchSource{Title: r.Title, URL: r.URL})
	}
	return result, nil
}
