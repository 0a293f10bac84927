package providers

import (
	openai "github.com/sashabaranov/go-openai"
)

// tokenStream adapts a go-openai completion stream to domain.ChatStream.
// Recv propagates io.EOF from the underlying stream on normal exhaustion.
type tokenStream struct {
	s *openai.ChatCompletionStream
}

func (t *tokenStream) Recv() (string, error) {
	for {
		resp, err := t.s.Recv()
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		return resp.Choices[0].Delta.Content, nil
	}
}

func (t *tokenStream) Close() error {
	return t.s.Close()
}
