package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDetails() TripDetails {
	return TripDetails{
		PickupLocation: "Deccan, Pune",
		PickupDate:     "2026-09-15",
		PickupTime:     "09:00",
		Contact: ContactInfo{
			Name:  "Asha Kulkarni",
			Phone: "+91 9876543210",
		},
	}
}

func TestTripType_IsValid(t *testing.T) {
	tests := []struct {
		name string
		t    TripType
		want bool
	}{
		{"oneway", TripTypeOneWay, true},
		{"round", TripTypeRoundTrip, true},
		{"rental", TripTypeRental, true},
		{"empty", TripType(""), false},
		{"unknown", TripType("shuttle"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.t.IsValid())
		})
	}
}

func TestTripType_Label(t *testing.T) {
	assert.Equal(t, "One Way", TripTypeOneWay.Label())
	assert.Equal(t, "Round Trip", TripTypeRoundTrip.Label())
	assert.Equal(t, "Rental", TripTypeRental.Label())
}

func TestDefaultTripType(t *testing.T) {
	assert.Equal(t, TripTypeRoundTrip, DefaultTripType)
}

func TestOneWayTrip_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*OneWayTrip)
		missingFields []string
	}{
		{"valid", func(r *OneWayTrip) {}, nil},
		{"missing pickup", func(r *OneWayTrip) { r.PickupLocation = "" }, []string{"pickup"}},
		{"missing drop", func(r *OneWayTrip) { r.DropLocation = "" }, []string{"drop"}},
		{"missing date", func(r *OneWayTrip) { r.PickupDate = "" }, []string{"date"}},
		{"missing time", func(r *OneWayTrip) { r.PickupTime = "" }, []string{"time"}},
		{"missing name", func(r *OneWayTrip) { r.Contact.Name = "" }, []string{"name"}},
		{"missing phone", func(r *OneWayTrip) { r.Contact.Phone = "" }, []string{"phone"}},
		{"whitespace-only pickup", func(r *OneWayTrip) { r.PickupLocation = "   " }, []string{"pickup"}},
		{
			"everything missing",
			func(r *OneWayTrip) { *r = OneWayTrip{} },
			[]string{"pickup", "drop", "date", "time", "name", "phone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := OneWayTrip{TripDetails: validDetails(), DropLocation: "Pune Airport"}
			tt.mutate(&req)

			err := req.Validate()
			if len(tt.missingFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			assert.Len(t, ve.Fields, len(tt.missingFields))
			for _, field := range tt.missingFields {
				assert.Contains(t, ve.Fields, field)
			}
		})
	}
}

func TestOneWayTrip_Validate_IgnoresOptionalFields(t *testing.T) {
	req := OneWayTrip{TripDetails: validDetails(), DropLocation: "Pune Airport"}
	req.Contact.Email = ""
	req.Instructions = ""
	assert.NoError(t, req.Validate())
}

func TestRoundTripJourney_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*RoundTripJourney)
		missingFields []string
	}{
		{"valid", func(r *RoundTripJourney) {}, nil},
		{"missing return date", func(r *RoundTripJourney) { r.ReturnDate = "" }, []string{"returnDate"}},
		{"missing return time", func(r *RoundTripJourney) { r.ReturnTime = "" }, []string{"returnTime"}},
		{"missing drop", func(r *RoundTripJourney) { r.DropLocation = "" }, []string{"drop"}},
		{
			"missing return leg",
			func(r *RoundTripJourney) { r.ReturnDate = ""; r.ReturnTime = "" },
			[]string{"returnDate", "returnTime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RoundTripJourney{
				TripDetails:  validDetails(),
				DropLocation: "Mahabaleshwar",
				ReturnDate:   "2026-09-17",
				ReturnTime:   "18:00",
			}
			tt.mutate(&req)

			err := req.Validate()
			if len(tt.missingFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			for _, field := range tt.missingFields {
				assert.Contains(t, ve.Fields, field)
			}
		})
	}
}

func TestRentalTrip_Validate(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*RentalTrip)
		missingFields []string
	}{
		{"valid one day", func(r *RentalTrip) {}, nil},
		{"valid max days", func(r *RentalTrip) { r.RentalDays = MaxRentalDays }, nil},
		{"zero days", func(r *RentalTrip) { r.RentalDays = 0 }, []string{"rentalDays"}},
		{"negative days", func(r *RentalTrip) { r.RentalDays = -1 }, []string{"rentalDays"}},
		{"over max days", func(r *RentalTrip) { r.RentalDays = MaxRentalDays + 1 }, []string{"rentalDays"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RentalTrip{
				TripDetails:  validDetails(),
				DropLocation: "Shirdi",
				RentalDays:   1,
			}
			tt.mutate(&req)

			err := req.Validate()
			if len(tt.missingFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
			for _, field := range tt.missingFields {
				assert.Contains(t, ve.Fields, field)
			}
		})
	}
}

// TestValidateRentalRequiresDrop pins the quirk that a rental booking
// requires a drop location even though the trip is characterized by pickup
// plus duration. The live form has always required it; changing this breaks
// the required-field contract.
func TestValidateRentalRequiresDrop(t *testing.T) {
	req := RentalTrip{TripDetails: validDetails(), RentalDays: 3}

	err := req.Validate()

	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "drop")
}

func TestNewBookingRef(t *testing.T) {
	ref := NewBookingRef()

	assert.True(t, strings.HasPrefix(ref, "MI-"))
	assert.Len(t, ref, len("MI-")+8)
	assert.Equal(t, strings.ToUpper(ref), ref)

	// Refs are unique per submission
	assert.NotEqual(t, ref, NewBookingRef())
}
