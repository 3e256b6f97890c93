// Package handler contains HTTP handlers for the MI Cabs site.
//
// This file implements the trip booking endpoint backing the inline and
// overlay booking forms.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/micabspune/micabs/internal/booking"
	"github.com/micabspune/micabs/internal/domain"
	"github.com/micabspune/micabs/internal/notify"
)

// TemplateRenderer is the interface for rendering HTML templates.
// This interface allows for mocking in tests.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, name string, data interface{})
	RenderPartial(w http.ResponseWriter, name string, data interface{})
}

// BookingHandler handles trip booking submissions.
//
// Each submission is an independent form instance: the posted fields are
// merged into a fresh Form and run through a Dispatcher, so the
// single-flight and preserve-on-failure semantics live in one place
// (internal/booking) whether the form arrived as JSON or form-encoded.
//
// Routes handled:
// - POST /book -> Submit
type BookingHandler struct {
	sender notify.Sender
	logger *slog.Logger
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(sender notify.Sender, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		sender: sender,
		logger: logger,
	}
}

// RegisterRoutes registers booking routes with the provided mux.
func (h *BookingHandler) RegisterRoutes(mux *http.ServeMux, limit func(http.Handler) http.Handler) {
	mux.Handle("POST /book", limit(http.HandlerFunc(h.Submit)))
}

// bookingResponse is the JSON envelope shared by the booking endpoints.
type bookingResponse struct {
	Error        string `json:"error,omitempty"`
	Message      string `json:"message"`
	Ref          string `json:"ref,omitempty"`
	CloseAfterMs int64  `json:"closeAfterMs,omitempty"`
}

// Submit accepts one trip booking and dispatches the notification emails.
//
// Responses:
// - 200 {message, ref, closeAfterMs} after the delivery collaborator confirmed
// - 400 {error, message} when required fields for the trip type are missing
// - 500 {error, message} when the outbound delivery fails
func (h *BookingHandler) Submit(w http.ResponseWriter, r *http.Request) {
	form, err := h.parseForm(r)
	if err != nil {
		writeBookingJSON(w, http.StatusBadRequest, bookingResponse{
			Error:   "Invalid request",
			Message: "Request body could not be parsed",
		})
		return
	}

	dispatcher := booking.NewDispatcher(form, h.sender, h.logger)
	status := dispatcher.Submit(r.Context())

	switch status.State {
	case domain.DispatchSuccess:
		writeBookingJSON(w, http.StatusOK, bookingResponse{
			Message:      status.Message,
			Ref:          status.Ref,
			CloseAfterMs: booking.SuccessDisplayDuration.Milliseconds(),
		})
	case domain.DispatchError:
		if status.Ref == "" {
			// Validation failure - no delivery was attempted
			writeBookingJSON(w, http.StatusBadRequest, bookingResponse{
				Error:   "Missing required fields",
				Message: status.Message,
			})
			return
		}
		writeBookingJSON(w, http.StatusInternalServerError, bookingResponse{
			Error:   "Failed to send booking request",
			Message: status.Message,
		})
	default:
		// Submit always ends in Success or Error
		InternalErrorResponse(w, r, h.logger, domain.Errorf(domain.EINTERNAL, "booking.submit",
			"unexpected dispatch state %q", status.State))
	}
}

// parseForm builds a booking form from either a JSON body or a classic
// form-encoded POST. Unknown fields are ignored by Form.SetField.
func (h *BookingHandler) parseForm(r *http.Request) (*booking.Form, error) {
	form := booking.NewForm()

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var fields map[string]string
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, err
		}
		for name, value := range fields {
			form.SetField(name, value)
		}
		return form, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	for name := range r.PostForm {
		form.SetField(name, r.PostForm.Get(name))
	}
	return form, nil
}

func writeBookingJSON(w http.ResponseWriter, status int, body bookingResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
