package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/petalmind/petalmind-gateway/pkg/api/response"
	"github.com/petalmind/petalmind-gateway/pkg/auth"
	"github.com/petalmind/petalmind-gateway/pkg/domain"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
)

type ChatVerifier interface {
	GetByID(ctx context.Context, ownerID string, chatID int64) (*domain.Chat, error)
}

type MessageRepository interface {
	Append(ctx context.Context, chatID int64, role, content, imageURL string) (*domain.Message, error)
	ListByChat(ctx context.Context, chatID int64) ([]domain.Message, error)
}

type messages struct {
	chats  ChatVerifier
	repo   MessageRepository
	writer response.JSONResponseWriter
}

func NewMessages(chats ChatVerifier, repo MessageRepository) *messages {
	return &messages{chats: chats, repo: repo}
}

func (m *messages) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		m.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := pathID(r, "chatId")
	if !ok {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "Valid chat ID is required")
		return
	}

	if !m.verifyOwnership(w, r, userID, chatID) {
		return
	}

	messageList, err := m.repo.ListByChat(r.Context(), chatID)
	if err != nil {
		slog.ErrorContext(r.Context(), "listing messages", logger.Err(err))
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if messageList == nil {
		messageList = []domain.Message{}
	}

	m.writer.WriteSuccessResponse(w, http.StatusOK, messageList)
}

func (m *messages) Append(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		m.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := pathID(r, "chatId")
	if !ok {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "Valid chat ID is required")
		return
	}

	if !m.verifyOwnership(w, r, userID, chatID) {
		return
	}

	var body struct {
		Role     string `json:"role"`
		Content  string `json:"content"`
		ImageURL string `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Role != domain.RoleUser && body.Role != domain.RoleAssistant {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, `Role must be either "user" or "assistant"`)
		return
	}

	content := strings.TrimSpace(body.Content)
	if content == "" {
		m.writer.WriteErrorResponse(w, http.StatusBadRequest, "Content cannot be empty")
		return
	}

	msg, err := m.repo.Append(r.Context(), chatID, body.Role, content, body.ImageURL)
	if err != nil {
		slog.ErrorContext(r.Context(), "appending message", logger.Err(err))
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	m.writer.WriteSuccessResponse(w, http.StatusCreated, msg)
}

// verifyOwnership rejects cross-owner access with 403 before any message data
// is touched. Writes the error response itself and reports whether to proceed.
func (m *messages) verifyOwnership(w http.ResponseWriter, r *http.Request, userID string, chatID int64) bool {
	if _, err := m.chats.GetByID(r.Context(), userID, chatID); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			m.writer.WriteErrorResponse(w, http.StatusForbidden, "Chat not found or access denied")
			return false
		}
		slog.ErrorContext(r.Context(), "verifying chat ownership", logger.Err(err))
		m.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return false
	}
	return true
}
