package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petalmind/petalmind-gateway/pkg/auth"
	"github.com/petalmind/petalmind-gateway/pkg/domain"
)

type fakeChatRepository struct {
	chats []domain.Chat
	err   error

	createdTitle string
	renamedID    int64
	deletedID    int64
	gotOwner     string
}

func (f *fakeChatRepository) Create(_ context.Context, ownerID, title string) (*domain.Chat, error) {
	f.gotOwner = ownerID
	f.createdTitle = title
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Chat{ID: 1, OwnerID: ownerID, Title: title, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (f *fakeChatRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Chat, error) {
	f.gotOwner = ownerID
	return f.chats, f.err
}

func (f *fakeChatRepository) Rename(_ context.Context, ownerID string, chatID int64, title string) (*domain.Chat, error) {
	f.gotOwner = ownerID
	f.renamedID = chatID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Chat{ID: chatID, OwnerID: ownerID, Title: title}, nil
}

func (f *fakeChatRepository) Delete(_ context.Context, ownerID string, chatID int64) error {
	f.gotOwner = ownerID
	f.deletedID = chatID
	return f.err
}

func newRequest(method, target, body, userID string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, target, reader)
	if userID != "" {
		r = r.WithContext(auth.ContextWithUserID(r.Context(), userID))
	}
	return r
}

func TestChatsList(t *testing.T) {
	repo := &fakeChatRepository{chats: []domain.Chat{{ID: 3, Title: "Go questions"}}}
	h := NewChats(repo)

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/api/chats", "", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", repo.gotOwner)

	var got []domain.Chat
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Go questions", got[0].Title)
}

func TestChatsList_EmptyIsArrayNotNull(t *testing.T) {
	h := NewChats(&fakeChatRepository{})

	w := httptest.NewRecorder()
	h.List(w, newRequest(http.MethodGet, "/api/chats", "", "user-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestChatsCreate(t *testing.T) {
	repo := &fakeChatRepository{}
	h := NewChats(repo)

	w := httptest.NewRecorder()
	h.Create(w, newRequest(http.MethodPost, "/api/chats", `{"title":"  My chat  "}`, "user-1"))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "My chat", repo.createdTitle)
}

func TestChatsCreate_TitleRequired(t *testing.T) {
	h := NewChats(&fakeChatRepository{})

	w := httptest.NewRecorder()
	h.Create(w, newRequest(http.MethodPost, "/api/chats", `{"title":"   "}`, "user-1"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Title is required and must be a non-empty string"}`, w.Body.String())
}

func TestChatsRename_AccessDeniedIsNotFound(t *testing.T) {
	repo := &fakeChatRepository{err: domain.ErrAccessDenied}
	h := NewChats(repo)

	r := newRequest(http.MethodPut, "/api/chats/5", `{"title":"New name"}`, "user-1")
	r.SetPathValue("chatId", "5")
	w := httptest.NewRecorder()
	h.Rename(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Chat not found or access denied"}`, w.Body.String())
	assert.Equal(t, int64(5), repo.renamedID)
}

func TestChatsRename_InvalidID(t *testing.T) {
	h := NewChats(&fakeChatRepository{})

	r := newRequest(http.MethodPut, "/api/chats/abc", `{"title":"New name"}`, "user-1")
	r.SetPathValue("chatId", "abc")
	w := httptest.NewRecorder()
	h.Rename(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Valid chat ID is required"}`, w.Body.String())
}

func TestChatsDelete(t *testing.T) {
	repo := &fakeChatRepository{}
	h := NewChats(repo)

	r := newRequest(http.MethodDelete, "/api/chats/7", "", "user-1")
	r.SetPathValue("chatId", "7")
	w := httptest.NewRecorder()
	h.Delete(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Chat deleted successfully"}`, w.Body.String())
	assert.Equal(t, int64(7), repo.deletedID)
	assert.Equal(t, "user-1", repo.gotOwner)
}

func TestChats_AnonymousRejected(t *testing.T) {
	repo := &fakeChatRepository{}
	h := NewChats(repo)

	tests := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
	}{
		{"list", h.List},
		{"create", h.Create},
		{"rename", h.Rename},
		{"delete", h.Delete},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			test.call(w, newRequest(http.MethodGet, "/api/chats", `{"title":"x"}`, ""))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
		})
	}
}
