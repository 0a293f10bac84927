package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/petalmind/petalmind-gateway/pkg/api/response"
	"github.com/petalmind/petalmind-gateway/pkg/auth"
	"github.com/petalmind/petalmind-gateway/pkg/domain"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
)

type ChatRepository interface {
	Create(ctx context.Context, ownerID, title string) (*domain.Chat, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Chat, error)
	Rename(ctx context.Context, ownerID string, chatID int64, title string) (*domain.Chat, error)
	Delete(ctx context.Context, ownerID string, chatID int64) error
}

type chats struct {
	repo   ChatRepository
	writer response.JSONResponseWriter
}

func NewChats(repo ChatRepository) *chats {
	return &chats{repo: repo}
}

func (c *chats) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		c.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userChats, err := c.repo.ListByOwner(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "listing chats", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if userChats == nil {
		userChats = []domain.Chat{}
	}

	c.writer.WriteSuccessResponse(w, http.StatusOK, userChats)
}

func (c *chats) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		c.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Title is required and must be a non-empty string")
		return
	}

	chat, err := c.repo.Create(r.Context(), userID, title)
	if err != nil {
		slog.ErrorContext(r.Context(), "creating chat", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, http.StatusCreated, chat)
}

func (c *chats) Rename(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		c.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := pathID(r, "chatId")
	if !ok {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Valid chat ID is required")
		return
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := strings.TrimSpace(body.Title)
	if title == "" {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Title is required and must be a non-empty string")
		return
	}

	chat, err := c.repo.Rename(r.Context(), userID, chatID, title)
	if err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "Chat not found or access denied")
			return
		}
		slog.ErrorContext(r.Context(), "renaming chat", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, http.StatusOK, chat)
}

func (c *chats) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		c.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	chatID, ok := pathID(r, "chatId")
	if !ok {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "Valid chat ID is required")
		return
	}

	if err := c.repo.Delete(r.Context(), userID, chatID); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "Chat not found or access denied")
			return
		}
		slog.ErrorContext(r.Context(), "deleting chat", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, http.StatusOK, map[string]string{"message": "Chat deleted successfully"})
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
