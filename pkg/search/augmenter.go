package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
)

type SearchClient interface {
	Configured() bool
	Search(ctx context.Context, query string) (*domain.SearchResult, error)
}

type augmenter struct {
	client SearchClient
}

func NewAugmenter(client SearchClient) *augmenter {
	return &augmenter{client: client}
}

// Augment returns a context block to append to the last user turn, or "" when
// the query carries no trigger keyword, no search credential is configured, or
// the search fails. Search failures are soft: they are logged and swallowed,
// never surfaced to the caller.
func (a *augmenter) Augment(ctx context.Context, lastUserText string) string {
	if !NeedsSearch(lastUserText) || !a.client.Configured() {
		return ""
	}

	slog.InfoContext(ctx, "Query needs current information, searching the web")

	result, err := a.client.Search(ctx, lastUserText)
	if err != nil {
		slog.ErrorContext(ctx, "web search failed", logger.Err(err))
		return ""
	}
	if result.Answer == "" {
		return ""
	}

	sources := lo.Slice(result.Sources, 0, 3)
	sourceLines := "No sources available"
	if len(sources) > 0 {
		lines := lo.Map(sources, func(s domain.SearchSource, _ int) string {
			return fmt.Sprintf("- %s: %s", s.Title, s.URL)
		})
		sourceLines = strings.Join(lines, "\n")
	}

	return fmt.Sprintf("\n\n[WEB SEARCH RESULTS - %s]\n%s\n\nSources:\n%s\n",
		time.Now().Format(time.DateOnly), result.Answer, sourceLines)
}
