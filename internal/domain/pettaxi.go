package domain

// =============================================================================
// Pet Type
// =============================================================================

// PetType categorizes the animal being transported.
type PetType string

const (
	PetTypeDog    PetType = "dog"
	PetTypeCat    PetType = "cat"
	PetTypeBird   PetType = "bird"
	PetTypeRabbit PetType = "rabbit"
	PetTypeOther  PetType = "other"
)

// String returns the string representation of the pet type.
func (p PetType) String() string {
	return string(p)
}

// IsValid returns true if the pet type is a recognized value.
func (p PetType) IsValid() bool {
	switch p {
	case PetTypeDog, PetTypeCat, PetTypeBird, PetTypeRabbit, PetTypeOther:
		return true
	}
	return false
}

// =============================================================================
// Pet Trip Request
// =============================================================================

// PetTripRequest is a pet-taxi booking intent. Unlike TripRequest it has a
// single flat shape with no trip-type branching, and the customer email is
// required - the confirmation email is part of the service contract.
//
// JSON tags match the POST /book-pet-taxi wire format.
type PetTripRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	PickupAddress       string `json:"pickupAddress"`
	DropoffAddress      string `json:"dropoffAddress"`
	PickupDate          string `json:"pickupDate"`
	PickupTime          string `json:"pickupTime"`
	PetType             string `json:"petType"`
	PetName             string `json:"petName"`
	SpecialInstructions string `json:"specialInstructions"` // optional
}

// Validate returns nil when every required field is present, or a
// ValidationError naming each missing field. SpecialInstructions is the
// only optional field.
func (r PetTripRequest) Validate() error {
	var ve *ValidationError
	check := func(field, value, message string) {
		if isBlank(value) {
			if ve == nil {
				ve = &ValidationError{Op: "pettaxi.request", Fields: map[string]string{}}
			}
			ve.Fields[field] = message
		}
	}

	check("name", r.Name, "Name is required")
	check("email", r.Email, "Email is required")
	check("phone", r.Phone, "Phone number is required")
	check("pickupAddress", r.PickupAddress, "Pickup address is required")
	check("dropoffAddress", r.DropoffAddress, "Drop-off address is required")
	check("pickupDate", r.PickupDate, "Pickup date is required")
	check("pickupTime", r.PickupTime, "Pickup time is required")
	check("petType", r.PetType, "Pet type is required")
	check("petName", r.PetName, "Pet name is required")

	if ve != nil {
		return ve
	}
	if !PetType(r.PetType).IsValid() {
		return NewValidationError("pettaxi.request", "petType", "Pet type must be one of dog, cat, bird, rabbit, other")
	}
	return nil
}
