package models

import (
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single transcript entry. Messages are append-only and
// immutable once written; insertion order is chronological order.
type Message struct {
	ID        string `json:"id,omitempty"` // ULID
	Role      string `json:"role"`         // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp int64  `json:"ts,omitempty"` // Unix ms
}

// Conversation holds one user's ordered transcript and, once computed,
// a cached summary of it. The summary is written once and reused for
// every later turn of the conversation.
type Conversation struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Messages  []Message  `json:"messages"`
	Summary   string     `json:"summary,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
