// Package notify delivers booking notifications to the operator and the
// customer through a black-box email delivery service.
//
// This package defines sender interfaces with implementations for:
// - SMTP relay (Mailhog in development, Gmail/Postmark SMTP in production)
// - EmailJS REST API (the transactional-email widget service)
//
// The dispatcher and handlers never know which transport is active - the
// implementation is selected once, from configuration, at startup.
package notify

import (
	"context"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/micabspune/micabs/internal/domain"
)

// =============================================================================
// Interface Definitions
// =============================================================================

// Sender delivers a trip booking notification.
//
// Implementations:
// - SMTPSender: server relay over SMTP (operator copy + optional customer copy)
// - EmailJSSender: one templated send through the EmailJS REST API
//
// All methods are context-aware for timeout and cancellation support.
type Sender interface {
	// Name identifies the transport for logs and metrics ("smtp", "emailjs").
	Name() string

	// SendTripBooking delivers one trip booking notification. A nil error
	// means the delivery collaborator confirmed the send.
	SendTripBooking(ctx context.Context, n TripNotification) error
}

// PetSender delivers the pet-taxi email pair: one operator copy with all
// submitted fields, one confirmation to the customer's address.
type PetSender interface {
	Name() string
	SendPetBooking(ctx context.Context, n PetNotification) error
}

// =============================================================================
// Notification Data Types
// =============================================================================

// TripNotification is one accepted trip submission ready for delivery.
type TripNotification struct {
	Ref     string // booking reference, e.g. "MI-3F2A9C41"
	Request domain.TripRequest
}

// PetNotification is one accepted pet-taxi submission ready for delivery.
type PetNotification struct {
	Ref     string
	Request domain.PetTripRequest
}

// Email represents a single email message.
type Email struct {
	To       string // Recipient email address
	Subject  string // Email subject line
	HTMLBody string // HTML content of the email
	TextBody string // Plain text fallback content
}

// =============================================================================
// Payload Flattening
// =============================================================================

// notApplicable is what the email template shows for fields the selected
// trip type does not use. The downstream template always renders every
// field, so blanks must never reach it.
const notApplicable = "N/A"

// TripParams flattens a trip request into the template parameter map the
// email templates expect. Fields inapplicable to the request's trip type
// are normalized to "N/A"; the domain union itself never stores them.
func TripParams(n TripNotification, op domain.OperatorContact) map[string]string {
	d := n.Request.Details()

	params := map[string]string{
		"booking_ref":          n.Ref,
		"from_name":            orNA(d.Contact.Name),
		"to_email":             op.Email,
		"trip_type":            n.Request.Type().Label(),
		"pickup_location":      d.PickupLocation,
		"drop_location":        notApplicable,
		"pickup_date":          d.PickupDate,
		"pickup_time":          d.PickupTime,
		"return_date":          notApplicable,
		"return_time":          notApplicable,
		"rental_days":          notApplicable,
		"user_name":            d.Contact.Name,
		"user_email":           orNA(d.Contact.Email),
		"user_phone":           d.Contact.Phone,
		"special_instructions": orNA(d.Instructions),
		"reply_to":             replyTo(d.Contact, op),
	}

	switch r := n.Request.(type) {
	case domain.OneWayTrip:
		params["drop_location"] = r.DropLocation
	case domain.RoundTripJourney:
		params["drop_location"] = r.DropLocation
		params["return_date"] = r.ReturnDate
		params["return_time"] = r.ReturnTime
	case domain.RentalTrip:
		params["drop_location"] = r.DropLocation
		params["rental_days"] = strconv.Itoa(r.RentalDays)
	}

	return params
}

// PetParams flattens a pet-taxi request for the email templates.
func PetParams(n PetNotification) map[string]string {
	r := n.Request
	return map[string]string{
		"booking_ref":          n.Ref,
		"name":                 r.Name,
		"email":                r.Email,
		"phone":                r.Phone,
		"pickup_address":       r.PickupAddress,
		"dropoff_address":      r.DropoffAddress,
		"pickup_date":          r.PickupDate,
		"pickup_time":          r.PickupTime,
		"pet_type":             titleCaser.String(r.PetType),
		"pet_name":             r.PetName,
		"special_instructions": orNone(r.SpecialInstructions),
	}
}

// replyTo prefers the customer's phone so the operator can call straight
// back from the notification, falling back to the operator's own address.
func replyTo(c domain.ContactInfo, op domain.OperatorContact) string {
	if c.Phone != "" {
		return c.Phone
	}
	return op.Email
}

var titleCaser = cases.Title(language.English)

func orNA(s string) string {
	if s == "" {
		return notApplicable
	}
	return s
}

// orNone matches the pet-taxi template wording for an empty optional field.
func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
