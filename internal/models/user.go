package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Profile is the open-ended set of attributes collected about a user
// over time. Keys are merged in, never removed.
type Profile map[string]any

// JSON returns the canonical JSON encoding of the profile, or "{}" if
// the profile is empty or cannot be encoded.
func (p Profile) JSON() string {
	if len(p) == 0 {
		return "{}"
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// User represents a chatbot user, identified by phone number.
type User struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Profile     Profile   `json:"profile"`
	CreatedAt   time.Time `json:"created_at"`
}
