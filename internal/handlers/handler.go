package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vua-solutions/vua/internal/chat"
	"github.com/vua-solutions/vua/internal/sms"
	"github.com/vua-solutions/vua/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	chat   *chat.Service
	store  store.DataStore
	sms    sms.Sender
	logger zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(chatSvc *chat.Service, ds store.DataStore, sender sms.Sender, logger zerolog.Logger) *Handler {
	return &Handler{chat: chatSvc, store: ds, sms: sender, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
