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

type fakeChatVerifier struct {
	err error

	gotOwner  string
	gotChatID int64
}

func (f *fakeChatVerifier) GetByID(_ context.Context, ownerID string, chatID int64) (*domain.Chat, error) {
	f.gotOwner = ownerID
	f.gotChatID = chatID
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Chat{ID: chatID, OwnerID: ownerID}, nil
}

type fakeMessageRepository struct {
	messages []domain.Message
	err      error

	appended *domain.Message
}

func (f *fakeMessageRepository) Append(_ context.Context, chatID int64, role, content, imageURL string) (*domain.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.appended = &domain.Message{ID: 1, ChatID: chatID, Role: role, Content: content, ImageURL: imageURL}
	return f.appended, nil
}

func (f *fakeMessageRepository) ListByChat(_ context.Context, _ int64) ([]domain.Message, error) {
	return f.messages, f.err
}

func TestMessagesList(t *testing.T) {
	verifier := &fakeChatVerifier{}
	repo := &fakeMessageRepository{messages: []domain.Message{{ID: 1, Role: domain.RoleUser, Content: "hi"}}}
	h := NewMessages(verifier, repo)

	r := newRequest(http.MethodGet, "/api/chats/4/messages", "", "user-1")
	r.SetPathValue("chatId", "4")
	w := httptest.NewRecorder()
	h.List(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", verifier.gotOwner)
	assert.Equal(t, int64(4), verifier.gotChatID)

	var got []domain.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
}

func TestMessagesList_CrossOwnerForbidden(t *testing.T) {
	verifier := &fakeChatVerifier{err: domain.ErrAccessDenied}
	repo := &fakeMessageRepository{messages: []domain.Message{{ID: 1}}}
	h := NewMessages(verifier, repo)

	r := newRequest(http.MethodGet, "/api/chats/4/messages", "", "intruder")
	r.SetPathValue("chatId", "4")
	w := httptest.NewRecorder()
	h.List(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"Chat not found or access denied"}`, w.Body.String())
}

func TestMessagesAppend(t *testing.T) {
	repo := &fakeMessageRepository{}
	h := NewMessages(&fakeChatVerifier{}, repo)

	r := newRequest(http.MethodPost, "/api/chats/4/messages",
		`{"role":"assistant","content":"an answer","imageUrl":"https://x/y.png"}`, "user-1")
	r.SetPathValue("chatId", "4")
	w := httptest.NewRecorder()
	h.Append(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.appended)
	assert.Equal(t, int64(4), repo.appended.ChatID)
	assert.Equal(t, domain.RoleAssistant, repo.appended.Role)
	assert.Equal(t, "an answer", repo.appended.Content)
	assert.Equal(t, "https://x/y.png", repo.appended.ImageURL)
}

func TestMessagesAppend_Validation(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedError string
	}{
		{"system role rejected", `{"role":"system","content":"x"}`, `Role must be either "user" or "assistant"`},
		{"unknown role rejected", `{"role":"bot","content":"x"}`, `Role must be either "user" or "assistant"`},
		{"empty content", `{"role":"user","content":"   "}`, "Content cannot be empty"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := &fakeMessageRepository{}
			h := NewMessages(&fakeChatVerifier{}, repo)

			r := newRequest(http.MethodPost, "/api/chats/4/messages", test.body, "user-1")
			r.SetPathValue("chatId", "4")
			w := httptest.NewRecorder()
			h.Append(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, test.expectedError, body["error"])
			assert.Nil(t, repo.appended)
		})
	}
}

func TestMessages_AnonymousRejected(t *testing.T) {
	h := NewMessages(&fakeChatVerifier{}, &fakeMessageRepository{})

	r := newRequest(http.MethodGet, "/api/chats/4/messages", "", "")
	r.SetPathValue("chatId", "4")
	w := httptest.NewRecorder()
	h.List(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
