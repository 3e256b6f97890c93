package mock

import (
	"context"
	"log/slog"

	"github.com/micabspune/micabs/internal/notify"
)

// Sender is a mock notification sender for testing and development
type Sender struct {
	logger *slog.Logger

	// Configurable errors for testing
	TripError error
	PetError  error

	// Call tracking for testing
	TripCalls int
	PetCalls  int

	// Last notifications handed to the sender
	TripSent []notify.TripNotification
	PetSent  []notify.PetNotification
}

// New creates a new mock sender
func New(logger *slog.Logger) *Sender {
	return &Sender{
		logger: logger,
	}
}

// Name identifies the transport for logs and metrics.
func (s *Sender) Name() string { return "mock" }

// SendTripBooking records the notification and returns the configured error.
func (s *Sender) SendTripBooking(ctx context.Context, n notify.TripNotification) error {
	s.TripCalls++

	if s.TripError != nil {
		return s.TripError
	}

	s.TripSent = append(s.TripSent, n)
	if s.logger != nil {
		s.logger.Debug("mock trip notification", "ref", n.Ref, "trip_type", n.Request.Type())
	}
	return nil
}

// SendPetBooking records the notification and returns the configured error.
func (s *Sender) SendPetBooking(ctx context.Context, n notify.PetNotification) error {
	s.PetCalls++

	if s.PetError != nil {
		return s.PetError
	}

	s.PetSent = append(s.PetSent, n)
	if s.logger != nil {
		s.logger.Debug("mock pet notification", "ref", n.Ref, "pet", n.Request.PetName)
	}
	return nil
}

var (
	_ notify.Sender    = (*Sender)(nil)
	_ notify.PetSender = (*Sender)(nil)
)
