// Package booking implements the trip booking pipeline: the form state
// model, its per-trip-type validation, and the dispatcher that turns a
// valid form into operator/customer notifications.
package booking

import (
	"sort"
	"strconv"
	"strings"

	"github.com/micabspune/micabs/internal/domain"
)

// Field names accepted by Form.SetField. They match the input names on
// the booking form markup.
const (
	FieldTripType     = "tripType"
	FieldPickup       = "pickup"
	FieldDrop         = "drop"
	FieldDate         = "date"
	FieldTime         = "time"
	FieldReturnDate   = "returnDate"
	FieldReturnTime   = "returnTime"
	FieldRentalDays   = "rentalDays"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldInstructions = "message"
)

var knownFields = map[string]bool{
	FieldTripType:     true,
	FieldPickup:       true,
	FieldDrop:         true,
	FieldDate:         true,
	FieldTime:         true,
	FieldReturnDate:   true,
	FieldReturnTime:   true,
	FieldRentalDays:   true,
	FieldName:         true,
	FieldEmail:        true,
	FieldPhone:        true,
	FieldInstructions: true,
}

// Form holds one in-progress trip booking. Every user edit merges exactly
// one field; all other values are preserved, including across trip-type
// switches - fields inapplicable to the new type stay populated but are
// ignored by validation and dispatch. (Clearing them instead would also be
// defensible; retaining matches the shipped form.)
//
// Form is not safe for concurrent use. The dispatcher serializes access,
// and each booking surface owns an independent Form.
type Form struct {
	fields map[string]string
}

// NewForm creates a form in its initial state: round trip pre-selected,
// rental days at the default, everything else empty.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// SetField merges one field into the form state. Unknown field names are
// ignored, so posting extra inputs cannot pollute the state.
func (f *Form) SetField(name, value string) {
	if !knownFields[name] {
		return
	}
	f.fields[name] = value
}

// Field returns the current value of one field.
func (f *Form) Field(name string) string {
	return f.fields[name]
}

// Values returns a copy of the current field values, for re-rendering the
// form after a failed submission.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		out[k] = v
	}
	return out
}

// TripType returns the currently selected trip type.
func (f *Form) TripType() domain.TripType {
	return domain.TripType(f.fields[FieldTripType])
}

// Reset returns the form to its initial empty state. Called only after a
// confirmed successful dispatch.
func (f *Form) Reset() {
	f.fields = map[string]string{
		FieldTripType:   domain.DefaultTripType.String(),
		FieldRentalDays: strconv.Itoa(domain.DefaultRentalDays),
	}
}

// IsInitial reports whether the form is in its freshly-reset state.
func (f *Form) IsInitial() bool {
	for name, value := range f.fields {
		switch name {
		case FieldTripType:
			if value != domain.DefaultTripType.String() {
				return false
			}
		case FieldRentalDays:
			if value != strconv.Itoa(domain.DefaultRentalDays) {
				return false
			}
		default:
			if value != "" {
				return false
			}
		}
	}
	return true
}

// Request materializes the typed trip request for the selected trip type.
// Fields belonging to other trip types are simply not read.
func (f *Form) Request() (domain.TripRequest, error) {
	details := domain.TripDetails{
		PickupLocation: f.fields[FieldPickup],
		PickupDate:     f.fields[FieldDate],
		PickupTime:     f.fields[FieldTime],
		Contact: domain.ContactInfo{
			Name:  f.fields[FieldName],
			Phone: f.fields[FieldPhone],
			Email: f.fields[FieldEmail],
		},
		Instructions: f.fields[FieldInstructions],
	}

	switch f.TripType() {
	case domain.TripTypeOneWay:
		return domain.OneWayTrip{
			TripDetails:  details,
			DropLocation: f.fields[FieldDrop],
		}, nil
	case domain.TripTypeRoundTrip:
		return domain.RoundTripJourney{
			TripDetails:  details,
			DropLocation: f.fields[FieldDrop],
			ReturnDate:   f.fields[FieldReturnDate],
			ReturnTime:   f.fields[FieldReturnTime],
		}, nil
	case domain.TripTypeRental:
		days, err := strconv.Atoi(strings.TrimSpace(f.fields[FieldRentalDays]))
		if err != nil {
			days = 0 // out of range, caught by Validate
		}
		return domain.RentalTrip{
			TripDetails:  details,
			DropLocation: f.fields[FieldDrop],
			RentalDays:   days,
		}, nil
	}

	return nil, domain.NewValidationError("booking.form", FieldTripType,
		"Trip type must be one of oneway, round, rental")
}

// Validate returns nil when every field required by the selected trip
// type is present, or a ValidationError naming each missing field. This is
// the authoritative check - browser required-markers are an affordance only.
func (f *Form) Validate() error {
	req, err := f.Request()
	if err != nil {
		return err
	}
	return req.Validate()
}

// MissingFields lists the field names from a validation error, sorted for
// stable display.
func MissingFields(err error) []string {
	ve, ok := err.(*domain.ValidationError)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(ve.Fields))
	for name := range ve.Fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}
