package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-session-secret")

func TestUserFromRequest_BearerHeader(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token, err := a.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	assert.Equal(t, "user-42", a.UserFromRequest(r))
}

func TestUserFromRequest_SessionCookie(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token, err := a.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	r.AddCookie(&http.Cookie{Name: "session_token", Value: token})

	assert.Equal(t, "user-42", a.UserFromRequest(r))
}

func TestUserFromRequest_HeaderWinsOverCookie(t *testing.T) {
	a := NewAuthenticator(testSecret)
	headerToken, err := a.IssueToken("header-user", time.Hour)
	require.NoError(t, err)
	cookieToken, err := a.IssueToken("cookie-user", time.Hour)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/api/chats", nil)
	r.Header.Set("Authorization", "Bearer "+headerToken)
	r.AddCookie(&http.Cookie{Name: "session_token", Value: cookieToken})

	assert.Equal(t, "header-user", a.UserFromRequest(r))
}

func TestUserFromRequest_Anonymous(t *testing.T) {
	a := NewAuthenticator(testSecret)

	expired, err := a.IssueToken("user-42", -time.Hour)
	require.NoError(t, err)

	other := NewAuthenticator([]byte("different-secret"))
	foreignSignature, err := other.IssueToken("user-42", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		request func() *http.Request
	}{
		{"no credentials", func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/", nil)
		}},
		{"expired token", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+expired)
			return r
		}},
		{"wrong signature", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer "+foreignSignature)
			return r
		}},
		{"garbage token", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Bearer not.a.jwt")
			return r
		}},
		{"non-bearer header", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			return r
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Empty(t, a.UserFromRequest(test.request()))
		})
	}
}

func TestUserIDContextRoundTrip(t *testing.T) {
	ctx := ContextWithUserID(context.Background(), "user-7")

	assert.Equal(t, "user-7", UserIDFromContext(ctx))
	assert.Empty(t, UserIDFromContext(context.Background()))
}
