package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

// classify maps quota-style provider failures (HTTP 429 or a "quota" message)
// onto domain.ErrQuotaExceeded so the dispatcher can decide whether a fallback
// attempt is warranted. Everything else passes through unchanged.
func classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %s", domain.ErrQuotaExceeded, apiErr.Message)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
	}

	if strings.Contains(strings.ToLower(err.Error()), "quota") {
		return fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
	}

	return err
}

// toMessages converts conversation turns to the upstream wire shape. History
// turns are forwarded text-only; any image on the last turn is handled by the
// vision branch, never here.
func toMessages(turns []domain.ConversationTurn) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, len(turns))
	for i, t := range turns {
		messages[i] = openai.ChatCompletionMessage{
			Role:    t.Role,
			Content: t.Content,
		}
	}
	return messages
}
