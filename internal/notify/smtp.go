package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"path/filepath"
	"time"

	"github.com/micabspune/micabs/internal/domain"
)

// =============================================================================
// SMTP Sender Implementation
// =============================================================================

// SMTPConfig holds SMTP relay configuration. Username and Password are the
// mail-account identity and app-specific credential; both come from process
// configuration and are never echoed anywhere.
type SMTPConfig struct {
	Host     string // SMTP server hostname (e.g., "localhost" for Mailhog)
	Port     int    // SMTP server port (e.g., 1025 for Mailhog)
	Username string // SMTP authentication username (empty for Mailhog)
	Password string // SMTP authentication password (empty for Mailhog)
	From     string // Sender email address
	FromName string // Sender display name
}

// SMTPSender delivers booking notifications over SMTP.
//
// This implementation works with:
// - Mailhog (development): No authentication required
// - Gmail / Postmark SMTP (production): Uses username/password authentication
//
// Email bodies are loaded from the templates directory and rendered with
// Go's html/template package.
type SMTPSender struct {
	config    SMTPConfig
	operator  domain.OperatorContact
	templates *template.Template
	logger    *slog.Logger

	// sendMail performs the actual SMTP delivery. Production uses
	// smtp.SendMail; tests swap in a recorder.
	sendMail func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a new SMTP-based sender.
//
// templatesDir is the email template directory (e.g., "web/templates/email");
// it must contain trip_operator.html, trip_customer.html, pet_operator.html
// and pet_customer.html.
func NewSMTPSender(
	config SMTPConfig,
	operator domain.OperatorContact,
	templatesDir string,
	logger *slog.Logger,
) (*SMTPSender, error) {
	if config.From == "" {
		config.From = "noreply@micabspune.com"
	}
	if config.FromName == "" {
		config.FromName = "MI Cabs"
	}

	pattern := filepath.Join(templatesDir, "*.html")
	templates, err := template.New("email").Funcs(emailTemplateFuncs()).ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &SMTPSender{
		config:    config,
		operator:  operator,
		templates: templates,
		logger:    logger,
		sendMail:  smtp.SendMail,
	}, nil
}

// Name identifies the transport for logs and metrics.
func (s *SMTPSender) Name() string { return "smtp" }

// =============================================================================
// Sender Interface Implementation
// =============================================================================

// SendTripBooking sends the operator copy of a trip booking and, when the
// customer left an email address, a confirmation copy to the customer.
func (s *SMTPSender) SendTripBooking(ctx context.Context, n TripNotification) error {
	params := TripParams(n, s.operator)
	d := n.Request.Details()

	htmlBody, err := s.renderTemplate("trip_operator.html", params)
	if err != nil {
		return fmt.Errorf("failed to render trip operator template: %w", err)
	}

	textBody := fmt.Sprintf(`New booking request %s

Trip type: %s
Pickup: %s
Drop: %s
Pickup date: %s at %s
Return: %s at %s
Rental days: %s

Customer: %s
Phone: %s
Email: %s
Instructions: %s
`, n.Ref, params["trip_type"], params["pickup_location"], params["drop_location"],
		params["pickup_date"], params["pickup_time"], params["return_date"], params["return_time"],
		params["rental_days"], params["user_name"], params["user_phone"], params["user_email"],
		params["special_instructions"])

	operatorMail := Email{
		To:       s.operator.Email,
		Subject:  fmt.Sprintf("New Booking Request from %s (%s)", d.Contact.Name, n.Ref),
		HTMLBody: htmlBody,
		TextBody: textBody,
	}

	if err := s.send(ctx, operatorMail); err != nil {
		return err
	}

	// Customer confirmation only when the (optional) email was provided.
	if d.Contact.Email == "" {
		return nil
	}

	customerHTML, err := s.renderTemplate("trip_customer.html", params)
	if err != nil {
		return fmt.Errorf("failed to render trip customer template: %w", err)
	}

	customerText := fmt.Sprintf(`Dear %s,

Thank you for booking with MI Cabs. Your booking reference is %s.
We will contact you shortly on %s to confirm your ride.

MI Cabs Team
`, d.Contact.Name, n.Ref, d.Contact.Phone)

	customerMail := Email{
		To:       d.Contact.Email,
		Subject:  fmt.Sprintf("MI Cabs Booking Received (%s)", n.Ref),
		HTMLBody: customerHTML,
		TextBody: customerText,
	}

	return s.send(ctx, customerMail)
}

// SendPetBooking sends exactly two emails: the operator copy containing all
// submitted fields, then the booking confirmation to the customer.
func (s *SMTPSender) SendPetBooking(ctx context.Context, n PetNotification) error {
	params := PetParams(n)
	r := n.Request

	operatorHTML, err := s.renderTemplate("pet_operator.html", params)
	if err != nil {
		return fmt.Errorf("failed to render pet operator template: %w", err)
	}

	operatorText := fmt.Sprintf(`New pet taxi booking request %s

Name: %s
Email: %s
Phone: %s
Pickup address: %s
Drop-off address: %s
Pickup: %s at %s
Pet: %s (%s)
Special instructions: %s
`, n.Ref, r.Name, r.Email, r.Phone, r.PickupAddress, r.DropoffAddress,
		r.PickupDate, r.PickupTime, r.PetName, params["pet_type"], params["special_instructions"])

	operatorMail := Email{
		To:       s.operator.Email,
		Subject:  fmt.Sprintf("New Pet Taxi Booking Request from %s", r.Name),
		HTMLBody: operatorHTML,
		TextBody: operatorText,
	}

	if err := s.send(ctx, operatorMail); err != nil {
		return err
	}

	customerHTML, err := s.renderTemplate("pet_customer.html", params)
	if err != nil {
		return fmt.Errorf("failed to render pet customer template: %w", err)
	}

	customerText := fmt.Sprintf(`Dear %s,

Thank you for booking our Pet Taxi service for %s.
Pickup on %s at %s from %s.

We will contact you shortly to confirm your booking.

Best regards,
MI Cabs Team
`, r.Name, r.PetName, r.PickupDate, r.PickupTime, r.PickupAddress)

	customerMail := Email{
		To:       r.Email,
		Subject:  "Pet Taxi Booking Confirmation",
		HTMLBody: customerHTML,
		TextBody: customerText,
	}

	return s.send(ctx, customerMail)
}

// =============================================================================
// Internal Methods
// =============================================================================

// send sends an email via SMTP.
func (s *SMTPSender) send(ctx context.Context, email Email) error {
	msg := s.buildMessage(email)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	// Auth only when credentials are provided (not needed for Mailhog)
	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	err := s.sendMail(addr, auth, s.config.From, []string{email.To}, msg)
	if err != nil {
		s.logger.Error("failed to send email",
			"to", email.To,
			"subject", email.Subject,
			"error", err,
		)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		"to", email.To,
		"subject", email.Subject,
	)

	return nil
}

// buildMessage constructs the raw email message with headers.
func (s *SMTPSender) buildMessage(email Email) []byte {
	var buf bytes.Buffer

	fromHeader := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.From)

	buf.WriteString(fmt.Sprintf("From: %s\r\n", fromHeader))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", email.To))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")

	// Multipart message for HTML + text
	boundary := "===============MICABS_BOUNDARY==============="
	buf.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary))
	buf.WriteString("\r\n")

	// Plain text part
	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.TextBody)
	buf.WriteString("\r\n")

	// HTML part
	buf.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	buf.WriteString("Content-Type: text/html; charset=utf-8\r\n")
	buf.WriteString("Content-Transfer-Encoding: quoted-printable\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(email.HTMLBody)
	buf.WriteString("\r\n")

	buf.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return buf.Bytes()
}

// renderTemplate renders an email template with the given data.
func (s *SMTPSender) renderTemplate(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// emailTemplateFuncs returns template functions available in email templates.
func emailTemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"currentYear": func() int {
			return time.Now().Year()
		},
	}
}

// =============================================================================
// Compile-time interface checks
// =============================================================================

var (
	_ Sender    = (*SMTPSender)(nil)
	_ PetSender = (*SMTPSender)(nil)
)
