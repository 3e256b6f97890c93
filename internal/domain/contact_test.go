package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactChannels(t *testing.T) {
	op := OperatorContact{
		Email: "bookings@micabspune.com",
		Phone: "+91 8805051404",
	}

	channels := ContactChannels(op)

	assert.Len(t, channels, 3)

	assert.Equal(t, "Call Us", channels[0].Title)
	assert.Equal(t, "+91 8805051404", channels[0].Content)
	assert.Equal(t, "tel:+918805051404", channels[0].Link)

	assert.Equal(t, "Mail Us", channels[1].Title)
	assert.Equal(t, "mailto:bookings@micabspune.com", channels[1].Link)

	assert.Equal(t, "Location", channels[2].Title)
	assert.Equal(t, "Deccan, Pune", channels[2].Content)
	assert.Empty(t, channels[2].Link)
}
