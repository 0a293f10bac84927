package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/petalmind/petalmind-gateway/pkg/api/response"
	"github.com/petalmind/petalmind-gateway/pkg/domain"
	"github.com/petalmind/petalmind-gateway/pkg/logger"
)

type ChatCompleter interface {
	Complete(ctx context.Context, req domain.ChatRequest) (*domain.Completion, error)
}

type chat struct {
	completer ChatCompleter
	writer    response.JSONResponseWriter
}

func NewChat(completer ChatCompleter) *chat {
	return &chat{completer: completer}
}

// Complete is the gateway endpoint: one conversation turn in, one buffered
// reply or token stream out.
func (c *chat) Complete(w http.ResponseWriter, r *http.Request) {
	var req domain.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Messages) == 0 {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "No messages provided")
		return
	}

	completion, err := c.completer.Complete(r.Context(), req)
	if err != nil {
		slog.ErrorContext(r.Context(), "completion failed", logger.Err(err))
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	if completion.Stream != nil {
		c.relayStream(r.Context(), w, completion.Stream)
		return
	}

	c.writer.WriteSuccessResponse(w, http.StatusOK, map[string]string{"reply": completion.Reply})
}

// relayStream forwards upstream fragments to the client in arrival order with
// no buffering. A mid-stream failure is annotated inline and the stream is
// closed; partial output already sent stays as-is.
func (c *chat) relayStream(ctx context.Context, w http.ResponseWriter, stream domain.ChatStream) {
	defer stream.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}
	flush()

	for {
		fragment, err := stream.Recv()
		if err == io.EOF {
			return
		}
		if err != nil {
			slog.ErrorContext(ctx, "stream failed mid-relay", logger.Err(err))
			fmt.Fprintf(w, "\n\n[error] %s", err.Error())
			flush()
			return
		}
		if fragment == "" {
			continue
		}

		if _, err := io.WriteString(w, fragment); err != nil {
			// Client went away; abandon the upstream iteration.
			slog.WarnContext(ctx, "client disconnected mid-stream", logger.Err(err))
			return
		}
		flush()
	}
}
