package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/micabspune/micabs/internal/domain"
	"github.com/micabspune/micabs/internal/metrics"
	"github.com/micabspune/micabs/internal/notify"
)

// SuccessDisplayDuration is how long a transient booking surface (the
// overlay form) stays open after a successful dispatch so the user can
// read the confirmation before it auto-closes.
const SuccessDisplayDuration = 2 * time.Second

// Status messages shown to the user. The success message is fixed; error
// messages carry the underlying reason when one is available.
const (
	msgSending = "Sending your booking request..."
	msgSuccess = "Your booking request has been sent successfully! We will contact you shortly."
)

// Dispatcher owns the submit lifecycle for one booking form: it validates
// the form, flattens it into a notification, invokes the delivery
// collaborator, and tracks the dispatch status for UI feedback.
//
// Only one submission may be in flight at a time; a Submit while a send is
// already running is a no-op. There is no automatic retry and no timeout
// at this layer - retry is user-initiated and re-validates from scratch,
// and any timeout belongs to the delivery collaborator.
type Dispatcher struct {
	form   *Form
	sender notify.Sender
	logger *slog.Logger

	mu     sync.Mutex
	status domain.DispatchStatus
}

// NewDispatcher creates a dispatcher bound to one form and one delivery
// transport.
func NewDispatcher(form *Form, sender notify.Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		form:   form,
		sender: sender,
		logger: logger,
		status: domain.DispatchStatus{State: domain.DispatchIdle},
	}
}

// Form returns the form this dispatcher owns.
func (d *Dispatcher) Form() *Form {
	return d.form
}

// Status returns the current dispatch status.
func (d *Dispatcher) Status() domain.DispatchStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Submit runs one submission attempt and returns the resulting status.
//
// Sequence:
//  1. If a send is already in flight, return the Sending status unchanged
//     without a second delivery attempt.
//  2. Validation failure moves straight to Error, citing the missing
//     fields; no delivery is attempted and the form keeps its values.
//  3. Otherwise the status transitions to Sending, the request is
//     flattened and handed to the sender.
//  4. Success resets the form to its initial state; failure preserves
//     every entered value for a user-initiated retry.
func (d *Dispatcher) Submit(ctx context.Context) domain.DispatchStatus {
	d.mu.Lock()
	if d.status.State == domain.DispatchSending {
		status := d.status
		d.mu.Unlock()
		return status
	}

	if err := d.form.Validate(); err != nil {
		status := domain.DispatchStatus{
			State:   domain.DispatchError,
			Message: missingFieldsMessage(err),
		}
		d.status = status
		d.mu.Unlock()

		// The trip type is raw user input here; only validated values may
		// become metric labels, anything else collapses to one series.
		tripType := d.form.TripType()
		if !tripType.IsValid() {
			tripType = "unknown"
		}
		metrics.BookingSubmissions.WithLabelValues(tripType.String(), "invalid").Inc()
		return status
	}

	req, _ := d.form.Request()
	n := notify.TripNotification{
		Ref:     domain.NewBookingRef(),
		Request: req,
	}

	d.status = domain.DispatchStatus{
		State:   domain.DispatchSending,
		Message: msgSending,
		Ref:     n.Ref,
	}
	d.mu.Unlock()

	d.logger.Info("dispatching booking",
		"ref", n.Ref,
		"trip_type", req.Type().String(),
		"provider", d.sender.Name(),
	)

	start := time.Now()
	err := d.sender.SendTripBooking(ctx, n)
	metrics.NotificationSendDuration.WithLabelValues(d.sender.Name()).Observe(time.Since(start).Seconds())

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		d.status = domain.DispatchStatus{
			State:   domain.DispatchError,
			Message: fmt.Sprintf("Failed to send booking request: %s", err),
			Ref:     n.Ref,
		}
		d.logger.Error("booking dispatch failed", "ref", n.Ref, "error", err)
		metrics.BookingSubmissions.WithLabelValues(req.Type().String(), "error").Inc()
		return d.status
	}

	// Confirmed success: only now is the entered data discarded.
	d.form.Reset()
	d.status = domain.DispatchStatus{
		State:   domain.DispatchSuccess,
		Message: msgSuccess,
		Ref:     n.Ref,
	}
	metrics.BookingSubmissions.WithLabelValues(req.Type().String(), "success").Inc()
	return d.status
}

// ClearStatus returns the status to Idle, e.g. when the booking surface is
// re-opened. The form itself is untouched.
func (d *Dispatcher) ClearStatus() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status.State.CanTransitionTo(domain.DispatchIdle) {
		d.status = domain.DispatchStatus{State: domain.DispatchIdle}
	}
}

func missingFieldsMessage(err error) string {
	fields := MissingFields(err)
	if len(fields) == 0 {
		return domain.ErrorMessage(err)
	}
	return "Please fill in all required fields: " + strings.Join(fields, ", ")
}
