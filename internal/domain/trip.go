// Package domain contains core business types for the MI Cabs booking site.
//
// This file defines the trip booking request types. A booking request is a
// tagged union over the three trip shapes (one-way, round trip, rental) -
// each shape carries exactly the fields that apply to it, so no sentinel
// values ever live inside the domain model.
package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// Trip Type
// =============================================================================

// TripType selects which booking shape (and required-field set) applies.
type TripType string

const (
	// TripTypeOneWay is a single pickup-to-drop journey.
	TripTypeOneWay TripType = "oneway"

	// TripTypeRoundTrip is an out-and-back journey with a return leg.
	TripTypeRoundTrip TripType = "round"

	// TripTypeRental books a car with driver for a number of days.
	TripTypeRental TripType = "rental"
)

// DefaultTripType is the shape a fresh booking form starts with.
const DefaultTripType = TripTypeRoundTrip

// String returns the string representation of the trip type.
func (t TripType) String() string {
	return string(t)
}

// IsValid returns true if the trip type is a recognized value.
func (t TripType) IsValid() bool {
	switch t {
	case TripTypeOneWay, TripTypeRoundTrip, TripTypeRental:
		return true
	}
	return false
}

// Label returns the display name used in emails and templates.
func (t TripType) Label() string {
	switch t {
	case TripTypeOneWay:
		return "One Way"
	case TripTypeRoundTrip:
		return "Round Trip"
	case TripTypeRental:
		return "Rental"
	}
	return string(t)
}

// =============================================================================
// Rental bounds
// =============================================================================

const (
	// MinRentalDays is the smallest bookable rental duration.
	MinRentalDays = 1

	// MaxRentalDays is the largest bookable rental duration.
	MaxRentalDays = 10

	// DefaultRentalDays is the pre-selected rental duration.
	DefaultRentalDays = 1
)

// =============================================================================
// Shared sub-records
// =============================================================================

// ContactInfo identifies the customer making a booking.
// Email is optional on the trip form - the operator calls back by phone.
type ContactInfo struct {
	Name  string
	Phone string
	Email string // optional
}

// TripDetails holds the fields common to every trip shape.
type TripDetails struct {
	PickupLocation string
	PickupDate     string // as entered, e.g. "2024-03-10"
	PickupTime     string // as entered, e.g. "09:00"
	Contact        ContactInfo
	Instructions   string // optional
}

// =============================================================================
// Trip Request (tagged union)
// =============================================================================

// TripRequest is a validated booking intent for one of the three trip
// shapes. Use a type switch or Type() to branch on the concrete shape.
type TripRequest interface {
	// Type returns the shape tag.
	Type() TripType

	// Details returns the fields shared by all shapes.
	Details() TripDetails

	// Validate returns nil when every required field for this shape is
	// present, or a ValidationError naming each missing field.
	Validate() error
}

// OneWayTrip is a single pickup-to-drop journey.
type OneWayTrip struct {
	TripDetails
	DropLocation string
}

// RoundTripJourney is an out-and-back journey with a return leg.
type RoundTripJourney struct {
	TripDetails
	DropLocation string
	ReturnDate   string
	ReturnTime   string
}

// RentalTrip books a car with driver for RentalDays days.
//
// DropLocation is required here too. That matches the live form, even
// though a rental is naturally characterized by pickup plus duration -
// see TestValidateRentalRequiresDrop before changing it.
type RentalTrip struct {
	TripDetails
	DropLocation string
	RentalDays   int
}

func (t OneWayTrip) Type() TripType { return TripTypeOneWay }

func (t RoundTripJourney) Type() TripType { return TripTypeRoundTrip }

func (t RentalTrip) Type() TripType { return TripTypeRental }

func (t OneWayTrip) Details() TripDetails { return t.TripDetails }

func (t RoundTripJourney) Details() TripDetails { return t.TripDetails }

func (t RentalTrip) Details() TripDetails { return t.TripDetails }

// Validate checks the one-way required-field set:
// pickup, drop, date, time, name, phone.
func (t OneWayTrip) Validate() error {
	ve := t.validateCommon("trip.oneway")
	if isBlank(t.DropLocation) {
		ve = addRequired(ve, "drop", "Drop location is required")
	}
	return asError(ve)
}

// Validate checks the round-trip required-field set:
// pickup, drop, date, time, return date, return time, name, phone.
func (t RoundTripJourney) Validate() error {
	ve := t.validateCommon("trip.round")
	if isBlank(t.DropLocation) {
		ve = addRequired(ve, "drop", "Drop location is required")
	}
	if isBlank(t.ReturnDate) {
		ve = addRequired(ve, "returnDate", "Return date is required")
	}
	if isBlank(t.ReturnTime) {
		ve = addRequired(ve, "returnTime", "Return time is required")
	}
	return asError(ve)
}

// Validate checks the rental required-field set:
// pickup, drop, date, time, rental days, name, phone.
func (t RentalTrip) Validate() error {
	ve := t.validateCommon("trip.rental")
	if isBlank(t.DropLocation) {
		ve = addRequired(ve, "drop", "Drop location is required")
	}
	if t.RentalDays < MinRentalDays || t.RentalDays > MaxRentalDays {
		ve = addRequired(ve, "rentalDays",
			fmt.Sprintf("Rental days must be between %d and %d", MinRentalDays, MaxRentalDays))
	}
	return asError(ve)
}

// validateCommon checks the fields required by every trip shape.
func (d TripDetails) validateCommon(op string) *ValidationError {
	var ve *ValidationError
	check := func(field, value, message string) {
		if isBlank(value) {
			if ve == nil {
				ve = &ValidationError{Op: op, Fields: map[string]string{}}
			}
			ve.Fields[field] = message
		}
	}

	check("pickup", d.PickupLocation, "Pickup location is required")
	check("date", d.PickupDate, "Pickup date is required")
	check("time", d.PickupTime, "Pickup time is required")
	check("name", d.Contact.Name, "Name is required")
	check("phone", d.Contact.Phone, "Phone number is required")
	return ve
}

func addRequired(ve *ValidationError, field, message string) *ValidationError {
	if ve == nil {
		ve = &ValidationError{Fields: map[string]string{}}
	}
	ve.Fields[field] = message
	return ve
}

// asError converts a possibly-nil *ValidationError into a plain error.
// Returning the typed nil directly would yield a non-nil interface.
func asError(ve *ValidationError) error {
	if ve == nil {
		return nil
	}
	return ve
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// =============================================================================
// Booking Reference
// =============================================================================

// NewBookingRef returns a short human-quotable reference for one accepted
// submission, e.g. "MI-3F2A9C41". It identifies the notification emails
// and log lines for a booking; nothing is persisted under it.
func NewBookingRef() string {
	id := uuid.New()
	return "MI-" + strings.ToUpper(id.String()[:8])
}
