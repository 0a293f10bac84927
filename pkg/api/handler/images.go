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

type ImageRepository interface {
	Create(ctx context.Context, ownerID, imageURL, prompt string) (*domain.GeneratedImage, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.GeneratedImage, error)
	GetByID(ctx context.Context, ownerID string, imageID int64) (*domain.GeneratedImage, error)
}

type images struct {
	repo   ImageRepository
	writer response.JSONResponseWriter
}

func NewImages(repo ImageRepository) *images {
	return &images{repo: repo}
}

func (i *images) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		i.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	records, err := i.repo.ListByOwner(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "listing image records", logger.Err(err))
		i.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if records == nil {
		records = []domain.GeneratedImage{}
	}

	i.writer.WriteSuccessResponse(w, http.StatusOK, records)
}

func (i *images) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		i.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var body struct {
		ImageURL string `json:"imageUrl"`
		Prompt   string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		i.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	imageURL := strings.TrimSpace(body.ImageURL)
	if imageURL == "" {
		i.writer.WriteErrorResponse(w, http.StatusBadRequest, "imageUrl is required and must be a non-empty string")
		return
	}

	prompt := strings.TrimSpace(body.Prompt)
	if prompt == "" {
		i.writer.WriteErrorResponse(w, http.StatusBadRequest, "prompt is required and must be a non-empty string")
		return
	}

	record, err := i.repo.Create(r.Context(), userID, imageURL, prompt)
	if err != nil {
		slog.ErrorContext(r.Context(), "creating image record", logger.Err(err))
		i.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	i.writer.WriteSuccessResponse(w, http.StatusCreated, record)
}

func (i *images) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		i.writer.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	imageID, ok := pathID(r, "imageId")
	if !ok {
		i.writer.WriteErrorResponse(w, http.StatusBadRequest, "Valid image ID is required")
		return
	}

	record, err := i.repo.GetByID(r.Context(), userID, imageID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			i.writer.WriteErrorResponse(w, http.StatusNotFound, "Image not found or access denied")
			return
		}
		slog.ErrorContext(r.Context(), "fetching image record", logger.Err(err))
		i.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	i.writer.WriteSuccessResponse(w, http.StatusOK, record)
}
