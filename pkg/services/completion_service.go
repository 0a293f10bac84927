package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
	"github.com/petalmind/petalmind-gateway/pkg/prompt"
)

const (
	emptyReplyFallback = "I'm not sure how to respond to that."

	// Shown instead of an error when image analysis fails; image input must
	// never surface as an HTTP failure.
	visionApology = "I can see your image, but I'm having trouble analyzing it right now. " +
		"Could you describe what you'd like to know about it?"
)

type TextProvider interface {
	Name() string
	Configured() bool
	CreateChatCompletion(ctx context.Context, turns []domain.ConversationTurn) (string, error)
	CreateChatCompletionStream(ctx context.Context, turns []domain.ConversationTurn) (domain.ChatStream, error)
}

type VisionProvider interface {
	Name() string
	Configured() bool
	AnalyzeImage(ctx context.Context, systemPrompt string, turn domain.ConversationTurn) (string, error)
	AnalyzeImageStream(ctx context.Context, systemPrompt string, turn domain.ConversationTurn) (domain.ChatStream, error)
}

type Augmenter interface {
	Augment(ctx context.Context, lastUserText string) string
}

type completionService struct {
	textProviders []TextProvider
	vision        VisionProvider
	augmenter     Augmenter
	now           func() time.Time
}

// NewCompletionService builds the gateway orchestrator. textProviders is the
// ordered fallback chain: the first entry is always tried first, later entries
// only after a quota or missing-credential failure of the one before.
func NewCompletionService(vision VisionProvider, augmenter Augmenter, textProviders ...TextProvider) *completionService {
	return &completionService{
		textProviders: textProviders,
		vision:        vision,
		augmenter:     augmenter,
		now:           time.Now,
	}
}

// Complete handles one user turn: composes the system prompt, optionally
// augments the last turn with web search results, and dispatches to the
// provider chain. The vision branch takes precedence over everything else.
func (s *completionService) Complete(ctx context.Context, req domain.ChatRequest) (*domain.Completion, error) {
	systemPrompt := prompt.Compose(domain.ParseMode(req.Mode), s.now())

	if req.LastTurn().HasImage() && s.vision.Configured() {
		return s.completeVision(ctx, systemPrompt, req)
	}

	return s.completeText(ctx, systemPrompt, req)
}

// completeVision sends the image-carrying turn to the vision provider. Search
// augmentation is skipped entirely; any failure becomes a friendly buffered
// apology rather than an error.
func (s *completionService) completeVision(ctx context.Context, systemPrompt string, req domain.ChatRequest) (*domain.Completion, error) {
	turn := req.LastTurn()

	slog.InfoContext(ctx, "Dispatching to vision provider", "provider", s.vision.Name(), "stream", req.Stream)

	if req.Stream {
		stream, err := s.vision.AnalyzeImageStream(ctx, systemPrompt, turn)
		if err != nil {
			slog.ErrorContext(ctx, "vision stream failed", logger.Err(err))
			return &domain.Completion{Reply: visionApology}, nil
		}
		return &domain.Completion{Stream: stream}, nil
	}

	reply, err := s.vision.AnalyzeImage(ctx, systemPrompt, turn)
	if err != nil {
		slog.ErrorContext(ctx, "vision analysis failed", logger.Err(err))
		return &domain.Completion{Reply: visionApology}, nil
	}

	reply, _ = lo.Coalesce(strings.TrimSpace(reply), emptyReplyFallback)
	return &domain.Completion{Reply: reply}, nil
}

func (s *completionService) completeText(ctx context.Context, systemPrompt string, req domain.ChatRequest) (*domain.Completion, error) {
	turns := s.buildTurns(ctx, systemPrompt, req)

	var lastErr error
	for i, provider := range s.textProviders {
		if i > 0 {
			slog.InfoContext(ctx, "Falling back to next provider", "provider", provider.Name())
		}

		completion, err := s.callProvider(ctx, provider, turns, req.Stream)
		if err == nil {
			return completion, nil
		}
		lastErr = err

		if i > 0 || !s.shouldFallBack(err, s.textProviders[i+1:]) {
			break
		}

		slog.ErrorContext(ctx, "provider failed with retryable error", "provider", provider.Name(), logger.Err(err))
	}

	return nil, lastErr
}

func (s *completionService) callProvider(ctx context.Context, provider TextProvider, turns []domain.ConversationTurn, stream bool) (*domain.Completion, error) {
	slog.InfoContext(ctx, "Calling completion provider", "provider", provider.Name(), "messagesCount", len(turns), "stream", stream)

	if stream {
		tokenStream, err := provider.CreateChatCompletionStream(ctx, turns)
		if err != nil {
			return nil, fmt.Errorf("creating completion stream: %w", err)
		}
		return &domain.Completion{Stream: tokenStream}, nil
	}

	reply, err := provider.CreateChatCompletion(ctx, turns)
	if err != nil {
		return nil, fmt.Errorf("creating completion: %w", err)
	}

	reply, _ = lo.Coalesce(strings.TrimSpace(reply), emptyReplyFallback)
	return &domain.Completion{Reply: reply}, nil
}

// buildTurns assembles the upstream message list: composed system prompt,
// text-only history, and the last turn with any search context appended.
func (s *completionService) buildTurns(ctx context.Context, systemPrompt string, req domain.ChatRequest) []domain.ConversationTurn {
	turns := make([]domain.ConversationTurn, 0, len(req.Messages)+1)
	turns = append(turns, domain.ConversationTurn{Role: domain.RoleSystem, Content: systemPrompt})

	for _, m := range req.Messages[:len(req.Messages)-1] {
		turns = append(turns, domain.ConversationTurn{Role: m.Role, Content: m.Content})
	}

	last := req.LastTurn()
	searchContext := ""
	if last.Role == domain.RoleUser {
		searchContext = s.augmenter.Augment(ctx, last.Content)
	}
	turns = append(turns, domain.ConversationTurn{Role: last.Role, Content: last.Content + searchContext})

	return turns
}

// shouldFallBack reports whether the failure class warrants one more attempt.
// Only quota exhaustion and a missing credential are retryable, and only when
// a configured provider remains in the chain.
func (s *completionService) shouldFallBack(err error, remaining []TextProvider) bool {
	if !errors.Is(err, domain.ErrQuotaExceeded) && !errors.Is(err, domain.ErrMissingCredential) {
		return false
	}
	for _, p := range remaining {
		if p.Configured() {
			return true
		}
	}
	return false
}
