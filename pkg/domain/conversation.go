package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is a single role-tagged turn as sent by the browser UI.
// Only the last turn of a conversation may carry an image; history turns are
// forwarded upstream as text only.
type ConversationTurn struct {
	Role     string `json:"role"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// HasImage reports whether the turn is a user turn carrying an image
// (data URI or remote URL).
func (t ConversationTurn) HasImage() bool {
	return t.Role == RoleUser && t.ImageURL != ""
}

type ChatRequest struct {
	Messages []ConversationTurn `json:"messages"`
	Stream   bool               `json:"stream"`
	Mode     string             `json:"mode"`
}

// LastTurn returns the final turn of the conversation.
func (r ChatRequest) LastTurn() ConversationTurn {
	if len(r.Messages) == 0 {
		return ConversationTurn{}
	}
	return r.Messages[len(r.Messages)-1]
}

// Completion is the result of one gateway request. Exactly one of Reply or
// Stream is set: Reply for buffered responses, Stream for token-by-token ones.
type Completion struct {
	Reply  string
	Stream ChatStream
}
