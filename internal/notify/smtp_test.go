package notify

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/micabspune/micabs/internal/domain"
)

const emailTemplatesDir = "../../web/templates/email"

func petTemplateRequest() domain.PetTripRequest {
	return domain.PetTripRequest{
		Name:           "Rohan Deshpande",
		Email:          "rohan@example.com",
		Phone:          "+91 9876543210",
		PickupAddress:  "Kothrud, Pune",
		DropoffAddress: "Vet clinic, Deccan",
		PickupDate:     "2026-09-20",
		PickupTime:     "11:30",
		PetType:        "dog",
		PetName:        "Simba",
	}
}

// sentMail is one delivery recorded by a test sendMail hook.
type sentMail struct {
	to  string
	msg string
}

func recordSends(sender *SMTPSender) *[]sentMail {
	var sent []sentMail
	sender.sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		for _, rcpt := range to {
			sent = append(sent, sentMail{to: rcpt, msg: string(msg)})
		}
		return nil
	}
	return &sent
}

func newTestSMTPSender(t *testing.T) *SMTPSender {
	t.Helper()
	sender, err := NewSMTPSender(SMTPConfig{
		Host: "localhost",
		Port: 1025,
	}, testOperator, emailTemplatesDir, emailjsTestLogger())
	if err != nil {
		t.Fatalf("create smtp sender: %v", err)
	}
	return sender
}

func TestNewSMTPSender_Defaults(t *testing.T) {
	sender := newTestSMTPSender(t)

	assert.Equal(t, "smtp", sender.Name())
	assert.Equal(t, "noreply@micabspune.com", sender.config.From)
	assert.Equal(t, "MI Cabs", sender.config.FromName)
}

func TestNewSMTPSender_BadTemplatesDir(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{}, testOperator, "no/such/dir", emailjsTestLogger())
	assert.Error(t, err)
}

func TestSMTPSender_RenderTripTemplates(t *testing.T) {
	sender := newTestSMTPSender(t)
	params := TripParams(TripNotification{
		Ref:     "MI-ABCD1234",
		Request: tripNotification().Request,
	}, testOperator)

	for _, name := range []string{"trip_operator.html", "trip_customer.html"} {
		t.Run(name, func(t *testing.T) {
			body, err := sender.renderTemplate(name, params)
			assert.NoError(t, err)
			assert.Contains(t, body, "MI-ABCD1234")
			assert.Contains(t, body, "Mahabaleshwar")
		})
	}
}

func TestSMTPSender_RenderPetTemplates(t *testing.T) {
	sender := newTestSMTPSender(t)
	params := PetParams(PetNotification{
		Ref:     "MI-ABCD1234",
		Request: petTemplateRequest(),
	})

	for _, name := range []string{"pet_operator.html", "pet_customer.html"} {
		t.Run(name, func(t *testing.T) {
			body, err := sender.renderTemplate(name, params)
			assert.NoError(t, err)
			assert.Contains(t, body, "Simba")
		})
	}
}

func TestSMTPSender_SendPetBooking_DeliversOperatorThenCustomer(t *testing.T) {
	sender := newTestSMTPSender(t)
	sent := recordSends(sender)

	err := sender.SendPetBooking(context.Background(), PetNotification{
		Ref:     "MI-ABCD1234",
		Request: petTemplateRequest(),
	})
	assert.NoError(t, err)

	// Exactly two deliveries: operator copy first, then the customer
	// confirmation to the submitted address
	assert.Len(t, *sent, 2)
	assert.Equal(t, testOperator.Email, (*sent)[0].to)
	assert.Equal(t, "rohan@example.com", (*sent)[1].to)

	// Both emails carry the submitted pet name and pickup address verbatim
	for _, mail := range *sent {
		assert.Contains(t, mail.msg, "Simba")
		assert.Contains(t, mail.msg, "Kothrud, Pune")
	}
}

func TestSMTPSender_SendPetBooking_OperatorFailureStopsCustomerCopy(t *testing.T) {
	sender := newTestSMTPSender(t)

	var attempts []string
	sender.sendMail = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		attempts = append(attempts, to[0])
		return errors.New("connection refused")
	}

	err := sender.SendPetBooking(context.Background(), PetNotification{
		Ref:     "MI-ABCD1234",
		Request: petTemplateRequest(),
	})

	assert.Error(t, err)
	assert.Equal(t, []string{testOperator.Email}, attempts)
}

func TestSMTPSender_SendTripBooking_CustomerCopyOnlyWithEmail(t *testing.T) {
	sender := newTestSMTPSender(t)
	sent := recordSends(sender)

	n := tripNotification()
	err := sender.SendTripBooking(context.Background(), n)
	assert.NoError(t, err)

	// No customer email on the trip form means operator copy only
	assert.Len(t, *sent, 1)
	assert.Equal(t, testOperator.Email, (*sent)[0].to)

	// With an email address the customer gets a confirmation copy too
	*sent = nil
	details := n.Request.(domain.RoundTripJourney)
	details.Contact.Email = "asha@example.com"
	n.Request = details

	err = sender.SendTripBooking(context.Background(), n)
	assert.NoError(t, err)
	assert.Len(t, *sent, 2)
	assert.Equal(t, testOperator.Email, (*sent)[0].to)
	assert.Equal(t, "asha@example.com", (*sent)[1].to)
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	sender := newTestSMTPSender(t)

	msg := string(sender.buildMessage(Email{
		To:       "asha@example.com",
		Subject:  "MI Cabs Booking Received (MI-ABCD1234)",
		HTMLBody: "<p>hello</p>",
		TextBody: "hello",
	}))

	assert.Contains(t, msg, "From: MI Cabs <noreply@micabspune.com>")
	assert.Contains(t, msg, "To: asha@example.com")
	assert.Contains(t, msg, "Subject: MI Cabs Booking Received (MI-ABCD1234)")
	assert.Contains(t, msg, "MIME-Version: 1.0")
	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, msg, "<p>hello</p>")

	// Message must terminate with the closing boundary
	assert.True(t, strings.Contains(msg, "--===============MICABS_BOUNDARY===============--"))
}
