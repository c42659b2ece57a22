package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/vua-solutions/vua/internal/models"
)

// UpdateProfileRequest represents the profile update request body.
type UpdateProfileRequest struct {
	PhoneNumber string         `json:"phone_number"`
	Profile     models.Profile `json:"profile"`
}

// UpdateProfile handles POST /update-profile: merges partial attributes
// into the user's profile, creating the user if needed.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "phone number and profile data required")
		return
	}

	if req.PhoneNumber == "" || len(req.Profile) == 0 {
		h.Error(w, http.StatusBadRequest, "phone number and profile data required")
		return
	}

	if err := h.chat.UpdateProfile(r.Context(), req.PhoneNumber, req.Profile); err != nil {
		h.logger.Error().Err(err).Str("phone", req.PhoneNumber).Msg("profile update failed")
		h.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	h.JSON(w, http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}
