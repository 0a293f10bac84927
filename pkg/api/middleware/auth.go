package middleware

import (
	"net/http"

	"github.com/petalmind/petalmind-gateway/pkg/auth"
)

type Authenticator interface {
	UserFromRequest(r *http.Request) string
}

// Auth resolves the session token to a user id and stores it in the request
// context. Anonymous requests pass through with an empty id; handlers that
// need an identity reject those themselves.
func Auth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := authenticator.UserFromRequest(r)
			ctx := auth.ContextWithUserID(r.Context(), userID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
