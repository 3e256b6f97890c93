// This file implements the pet taxi booking endpoint. Unlike the trip
// form, the pet form always goes through the server SMTP relay and sends a
// fixed pair of emails: operator copy + customer confirmation.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/micabspune/micabs/internal/domain"
	"github.com/micabspune/micabs/internal/metrics"
	"github.com/micabspune/micabs/internal/notify"
)

// PetTaxiHandler handles pet taxi booking submissions.
//
// Routes handled:
// - POST /book-pet-taxi -> Submit
type PetTaxiHandler struct {
	sender notify.PetSender
	logger *slog.Logger
}

// NewPetTaxiHandler creates a new PetTaxiHandler.
func NewPetTaxiHandler(sender notify.PetSender, logger *slog.Logger) *PetTaxiHandler {
	return &PetTaxiHandler{
		sender: sender,
		logger: logger,
	}
}

// RegisterRoutes registers pet taxi routes with the provided mux.
func (h *PetTaxiHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /book-pet-taxi", limit(http.HandlerFunc(h.Submit)))
}

// petTaxiResponse is the JSON envelope of the pet taxi endpoint.
type petTaxiResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

// Submit accepts one pet taxi booking.
//
// Responses:
// - 400 {error, message} when any required field is missing; nothing is sent
// - 200 {message} after exactly two emails went out (operator + customer)
// - 500 {error, message} when the outbound mail dispatch fails
func (h *PetTaxiHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.PetTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePetTaxiJSON(w, http.StatusBadRequest, petTaxiResponse{
			Error:   "Invalid request",
			Message: "Request body must be valid JSON",
		})
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("pet taxi booking rejected",
			"missing_fields", len(fieldErrors(err)),
		)
		metrics.PetBookingSubmissions.WithLabelValues("invalid").Inc()
		writePetTaxiJSON(w, http.StatusBadRequest, petTaxiResponse{
			Error:   "Missing required fields",
			Message: "Please fill in all required fields",
		})
		return
	}

	n := notify.PetNotification{
		Ref:     domain.NewBookingRef(),
		Request: req,
	}

	h.logger.Info("dispatching pet taxi booking",
		"ref", n.Ref,
		"pet_type", req.PetType,
		"provider", h.sender.Name(),
	)

	if err := h.sender.SendPetBooking(r.Context(), n); err != nil {
		h.logger.Error("pet taxi dispatch failed", "ref", n.Ref, "error", err)
		metrics.PetBookingSubmissions.WithLabelValues("error").Inc()
		writePetTaxiJSON(w, http.StatusInternalServerError, petTaxiResponse{
			Error:   "Failed to process booking request",
			Message: "Something went wrong. Please try again later.",
		})
		return
	}

	metrics.PetBookingSubmissions.WithLabelValues("success").Inc()
	writePetTaxiJSON(w, http.StatusOK, petTaxiResponse{
		Message: "Booking request sent successfully! We will contact you shortly to confirm.",
	})
}

func fieldErrors(err error) map[string]string {
	if ve, ok := err.(*domain.ValidationError); ok {
		return ve.Fields
	}
	return nil
}

func writePetTaxiJSON(w http.ResponseWriter, status int, body petTaxiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
