package providers

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

const (
	openAITextModel = "gpt-4o-mini"

	// Token budgets differ between buffered and streaming calls; fixed
	// constants, not user-configurable.
	openAIMaxTokensBuffered = 800
	openAIMaxTokensStream   = 1000

	textTemperature = 0.7
)

// OpenAI is the primary text completion provider.
type OpenAI struct {
	client *openai.Client
	token  string
}

func NewOpenAI(token string) *OpenAI {
	return &OpenAI{
		client: openai.NewClientWithConfig(openai.DefaultConfig(token)),
		token:  token,
	}
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Configured() bool { return o.token != "" }

func (o *OpenAI) CreateChatCompletion(ctx context.Context, turns []domain.ConversationTurn) (string, error) {
	if o.token == "" {
		return "", domain.ErrMissingCredential
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       openAITextModel,
		Messages:    toMessages(turns),
		Temperature: textTemperature,
		MaxTokens:   openAIMaxTokensBuffered,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (o *OpenAI) CreateChatCompletionStream(ctx context.Context, turns []domain.ConversationTurn) (domain.ChatStream, error) {
	if o.token == "" {
		return nil, domain.ErrMissingCredential
	}

	stream, err := o.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       openAITextModel,
		Messages:    toMessages(turns),
		Temperature: textTemperature,
		MaxTokens:   openAIMaxTokensStream,
		Stream:      true,
	})
	if err != nil {
		return nil, classify(err)
	}

	return &tokenStream{s: stream}, nil
}
