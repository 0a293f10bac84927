package providers

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"

	groqTextModel   = "llama-3.3-70b-versatile"
	groqVisionModel = "llama-3.2-90b-vision-preview"

	groqMaxTokensBuffered = 1000
	groqMaxTokensStream   = 1200
	groqMaxTokensVision   = 1024
)

// Groq talks to Groq's OpenAI-compatible API. It is the fallback for text
// completions and the sole provider for image input.
type Groq struct {
	client *openai.Client
	token  string
}

func NewGroq(token string) *Groq {
	cfg := openai.DefaultConfig(token)
	cfg.BaseURL = groqBaseURL

	return &Groq{
		client: openai.NewClientWithConfig(cfg),
		token:  token,
	}
}

func (g *Groq) Name() string { return "groq" }

func (g *Groq) Configured() bool { return g.token != "" }

func (g *Groq) CreateChatCompletion(ctx context.Context, turns []domain.ConversationTurn) (string, error) {
	if g.token == "" {
		return "", domain.ErrMissingCredential
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       groqTextModel,
		Messages:    toMessages(turns),
		Temperature: textTemperature,
		MaxTokens:   groqMaxTokensBuffered,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *Groq) CreateChatCompletionStream(ctx context.Context, turns []domain.ConversationTurn) (domain.ChatStream, error) {
	if g.token == "" {
		return nil, domain.ErrMissingCredential
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       groqTextModel,
		Messages:    toMessages(turns),
		Temperature: textTemperature,
		MaxTokens:   groqMaxTokensStream,
		Stream:      true,
	})
	if err != nil {
		return nil, classify(err)
	}

	return &tokenStream{s: stream}, nil
}

// AnalyzeImage sends the system prompt plus the single image-carrying turn to
// the vision model and returns the buffered reply.
func (g *Groq) AnalyzeImage(ctx context.Context, systemPrompt string, turn domain.ConversationTurn) (string, error) {
	if g.token == "" {
		return "", domain.ErrMissingCredential
	}

	resp, err := g.client.CreateChatCompletion(ctx, g.visionRequest(systemPrompt, turn, false))
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *Groq) AnalyzeImageStream(ctx context.Context, systemPrompt string, turn domain.ConversationTurn) (domain.ChatStream, error) {
	if g.token == "" {
		return nil, domain.ErrMissingCredential
	}

	stream, err := g.client.CreateChatCompletionStream(ctx, g.visionRequest(systemPrompt, turn, true))
	if err != nil {
		return nil, classify(err)
	}

	return &tokenStream{s: stream}, nil
}

func (g *Groq) visionRequest(systemPrompt string, turn domain.ConversationTurn, stream bool) openai.ChatCompletionRequest {
	note := fmt.Sprintf("\n\nNote: Today is %s. Provide current information if relevant.",
		time.Now().Format("January 2, 2006"))

	return openai.ChatCompletionRequest{
		Model: groqVisionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: turn.Content + note,
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: turn.ImageURL},
					},
				},
			},
		},
		Temperature: textTemperature,
		MaxTokens:   groqMaxTokensVision,
		Stream:      stream,
	}
}
