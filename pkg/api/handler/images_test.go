package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

type fakeImageRepository struct {
	records []domain.GeneratedImage
	err     error

	created  *domain.GeneratedImage
	gotOwner string
}

func (f *fakeImageRepository) Create(_ context.Context, ownerID, imageURL, prompt string) (*domain.GeneratedImage, error) {
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	f.created = &domain.GeneratedImage{ID: 1, OwnerID: ownerID, ImageURL: imageURL, Prompt: prompt}
	return f.created, nil
}

func (f *fakeImageRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.GeneratedImage, error) {
	f.gotOwner = ownerID
	return f.records, f.err
}

func (f *fakeImageRepository) GetByID(_ context.Context, ownerID string, imageID int64) (*domain.GeneratedImage, error) {
	f.gotOwner = ownerID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.GeneratedImage{ID: imageID, OwnerID: ownerID}, nil
}

func TestImagesList(t *testing.T) {
	repo := &fakeImageRepository{records: []domain.GeneratedImage{{ID: 2, Prompt: "a red fox"}}}
	h := NewImages(repo)

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/api/images", "", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", repo.gotOwner)

	var got []domain.GeneratedImage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "a red fox", got[0].Prompt)
}

func TestImagesCreate(t *testing.T) {
	repo := &fakeImageRepository{}
	h := NewImages(repo)

	w := httptest.NewRecorder()
	h.Create(w, newRequest(http.MethodPost, "/api/images",
		`{"imageUrl":"https://cdn/img.png","prompt":"a red fox"}`, "user-1"))

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.created)
	assert.Equal(t, "https://cdn/img.png", repo.created.ImageURL)
	assert.Equal(t, "a red fox", repo.created.Prompt)
}

func TestImagesCreate_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{"missing imageUrl", `{"prompt":"a red fox"}`, "imageUrl is required and must be a non-empty string"},
		{"missing prompt", `{"imageUrl":"https://cdn/img.png"}`, "prompt is required and must be a non-empty string"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := &fakeImageRepository{}
			h := NewImages(repo)

			w := httptest.NewRecorder()
			h.Create(w, newRequest(http.MethodPost, "/api/images", test.body, "user-1"))

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, test.expectedError, body["error"])
			assert.Nil(t, repo.created)
		})
	}
}

func TestImagesGet_NotFound(t *testing.T) {
	repo := &fakeImageRepository{err: domain.ErrNotFound}
	h := NewImages(repo)

	r := newRequest(http.MethodGet, "/api/images/9", "", "user-1")
	r.SetPathValue("imageId", "9")
	w := httptest.NewRecorder()
	h.Get(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Image not found or access denied"}`, w.Body.String())
}

func TestImages_AnonymousRejected(t *testing.T) {
	h := NewImages(&fakeImageRepository{})

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/api/images", "", ""))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}
