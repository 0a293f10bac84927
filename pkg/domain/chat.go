package domain

import "time"

// Chat is a persisted conversation owned by a single user.
type Chat struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"-"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Message is a persisted turn within a chat.
type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chatId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// GeneratedImage is a per-user record of an image the user produced or
// uploaded, kept so the gallery survives across devices.
type GeneratedImage struct {
	ID        int64     `json:"id"`
	OwnerID   string    `json:"-"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	CreatedAt time.Time `json:"createdAt"`
}
