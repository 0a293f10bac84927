package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/petalmind/petalmind-gateway/pkg/logger"
)

// RequestID tags every request with a short id carried in the context and
// echoed by the log handler.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()[:8]
		ctx := logger.ContextWithRequestID(r.Context(), requestID)

		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
