package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/micabspune/micabs/internal/domain"
)

// DefaultEmailJSEndpoint is the EmailJS REST send endpoint.
const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// =============================================================================
// EmailJS Sender Implementation
// =============================================================================

// EmailJSSender delivers trip bookings through the EmailJS transactional
// email API. One send fills the operator's booking template; EmailJS owns
// the actual mail delivery, so this transport has no customer-copy path of
// its own - the template's auto-reply feature covers it.
//
// The public key, service id and template id are functionally required for
// delivery; missing values are rejected at construction so a
// misconfiguration fails at startup rather than on the first booking.
type EmailJSSender struct {
	publicKey  string
	serviceID  string
	templateID string
	operator   domain.OperatorContact
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// EmailJSConfig holds the EmailJS identifiers. All three are required.
type EmailJSConfig struct {
	PublicKey  string // user_id in the REST payload; safe to expose client-side
	ServiceID  string
	TemplateID string

	// Endpoint overrides the EmailJS API URL. Empty means the real API;
	// tests point it at an httptest server.
	Endpoint string
}

// NewEmailJSSender creates a new EmailJS-backed sender.
func NewEmailJSSender(cfg EmailJSConfig, operator domain.OperatorContact, logger *slog.Logger) (*EmailJSSender, error) {
	if cfg.PublicKey == "" {
		return nil, fmt.Errorf("emailjs: public key is required")
	}
	if cfg.ServiceID == "" {
		return nil, fmt.Errorf("emailjs: service id is required")
	}
	if cfg.TemplateID == "" {
		return nil, fmt.Errorf("emailjs: template id is required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEmailJSEndpoint
	}

	return &EmailJSSender{
		publicKey:  cfg.PublicKey,
		serviceID:  cfg.ServiceID,
		templateID: cfg.TemplateID,
		operator:   operator,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}, nil
}

// Name identifies the transport for logs and metrics.
func (s *EmailJSSender) Name() string { return "emailjs" }

// emailJSRequest is the wire format of the EmailJS send call.
type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendTripBooking posts the flattened booking payload to the EmailJS API.
// Anything but HTTP 200 is a delivery failure.
func (s *EmailJSSender) SendTripBooking(ctx context.Context, n TripNotification) error {
	params := TripParams(n, s.operator)

	body, err := json.Marshal(emailJSRequest{
		ServiceID:      s.serviceID,
		TemplateID:     s.templateID,
		UserID:         s.publicKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("emailjs send failed", "ref", n.Ref, "error", err)
		return fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// EmailJS returns a short plain-text reason; keep it for the status message
		reason, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		s.logger.Error("emailjs send rejected",
			"ref", n.Ref,
			"status", resp.StatusCode,
			"reason", string(reason),
		)
		return fmt.Errorf("emailjs: send failed with status %d: %s", resp.StatusCode, string(reason))
	}

	s.logger.Info("emailjs notification sent", "ref", n.Ref, "to", s.operator.Email)
	return nil
}

var _ Sender = (*EmailJSSender)(nil)
