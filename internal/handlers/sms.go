package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/vua-solutions/vua/internal/chat"
	"github.com/vua-solutions/vua/internal/metrics"
	"github.com/vua-solutions/vua/internal/sms"
)

const welcomeMessage = "Hey welcome to Vua!"

// IncomingSMS handles POST /vua: the gateway's inbound-message webhook.
// The body is form-encoded with "text" and "from"; the reply goes back
// out as an SMS to the sender.
func (h *Handler) IncomingSMS(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	message := strings.ToLower(r.PostFormValue("text"))
	phoneNumber := r.PostFormValue("from")

	if message == "" || phoneNumber == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	h.logger.Info().Str("phone", phoneNumber).Str("text", message).Msg("inbound SMS received")

	reply, err := h.chat.Respond(r.Context(), phoneNumber, message, chat.ChannelSMS)
	if err != nil {
		h.logger.Error().Err(err).Str("phone", phoneNumber).Msg("turn failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := h.sms.Send(r.Context(), reply, phoneNumber); err != nil {
		metrics.SMSSent.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Str("phone", phoneNumber).Msg("failed to send SMS reply")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	metrics.SMSSent.WithLabelValues("ok").Inc()

	w.WriteHeader(http.StatusOK)
}

// SendWelcomeSMS handles GET /send-sms: normalizes the recipient number
// and sends the welcome message. Responses are plain text, matching the
// gateway console conventions.
func (h *Handler) SendWelcomeSMS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	recipient := r.URL.Query().Get("to")
	if recipient == "" {
		fmt.Fprint(w, "Please provide a recipient number.")
		return
	}

	normalized, err := sms.Normalize(recipient)
	if err != nil {
		fmt.Fprint(w, err.Error())
		return
	}

	if err := h.sms.Send(r.Context(), welcomeMessage, normalized); err != nil {
		metrics.SMSSent.WithLabelValues("error").Inc()
		h.logger.Error().Err(err).Str("phone", normalized).Msg("failed to send welcome SMS")
		fmt.Fprintf(w, "Houston, we have a problem: %v", err)
		return
	}
	metrics.SMSSent.WithLabelValues("ok").Inc()

	fmt.Fprint(w, "SMS sent.")
}

// DeliveryReports handles POST /delivery-reports: the gateway posts
// asynchronous delivery callbacks here. They are logged, nothing more.
func (h *Handler) DeliveryReports(w http.ResponseWriter, r *http.Request) {
	var report map[string]any
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		h.logger.Warn().Err(err).Msg("unreadable delivery report")
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Info().Interface("report", report).Msg("delivery report received")
	w.WriteHeader(http.StatusOK)
}
