package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vua-solutions/vua/internal/chat"
)

// ChatRequest represents the direct-API chat request body.
type ChatRequest struct {
	Message     string `json:"message"`
	PhoneNumber string `json:"phone_number"`
}

// ChatResponse represents the chat response.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat handles POST /chat: one conversation turn over the direct API
// channel.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "message and phone number required")
		return
	}

	if req.Message == "" || req.PhoneNumber == "" {
		h.Error(w, http.StatusBadRequest, "message and phone number required")
		return
	}

	reply, err := h.chat.Respond(r.Context(), req.PhoneNumber, req.Message, chat.ChannelAPI)
	if err != nil {
		h.logger.Error().Err(err).Str("phone", req.PhoneNumber).Msg("turn failed")
		h.Error(w, http.StatusInternalServerError, "failed to generate reply")
		return
	}

	h.JSON(w, http.StatusOK, ChatResponse{Reply: reply})
}
