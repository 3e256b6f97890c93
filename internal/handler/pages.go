// This file implements the public marketing pages and the contact surface.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/micabspune/micabs/internal/booking"
	"github.com/micabspune/micabs/internal/domain"
)

// PageData is the template data shared by every public page.
type PageData struct {
	CurrentPath string
	Title       string

	// Contact surface - rendered on the contact page and in the
	// floating contact panel partial on every page.
	Channels []domain.ContactChannel

	// Booking form defaults
	TripType         string
	RentalDaysMin    int
	RentalDaysMax    int
	RentalDays       int
	SuccessDisplayMs int64
}

// PageHandler serves the static marketing pages.
//
// Routes handled:
// - GET /          -> home (with inline booking form + overlay)
// - GET /about-us  -> about
// - GET /services  -> services
// - GET /pet-taxi  -> pet taxi booking page
// - GET /contact   -> contact page
type PageHandler struct {
	renderer TemplateRenderer
	operator domain.OperatorContact
	logger   *slog.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(renderer TemplateRenderer, operator domain.OperatorContact, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		renderer: renderer,
		operator: operator,
		logger:   logger,
	}
}

// RegisterRoutes registers all page routes with the provided mux.
func (h *PageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /", h.Home)
	mux.HandleFunc("GET /about-us", h.About)
	mux.HandleFunc("GET /services", h.Services)
	mux.HandleFunc("GET /pet-taxi", h.PetTaxi)
	mux.HandleFunc("GET /contact", h.Contact)
}

// Home renders the landing page. The booking form is present twice - once
// inline in the hero, once in the overlay - and the two instances are
// fully independent.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		NotFoundResponse(w, r, h.logger)
		return
	}
	h.renderer.RenderHTTP(w, "public/home", h.pageData(r, "MI Cabs - Cab Service in Pune"))
}

func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/about", h.pageData(r, "About Us"))
}

func (h *PageHandler) Services(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/services", h.pageData(r, "Our Services"))
}

func (h *PageHandler) PetTaxi(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/pet-taxi", h.pageData(r, "Pet Taxi"))
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderer.RenderHTTP(w, "public/contact", h.pageData(r, "Contact Us"))
}

func (h *PageHandler) pageData(r *http.Request, title string) PageData {
	return PageData{
		CurrentPath:      r.URL.Path,
		Title:            title,
		Channels:         domain.ContactChannels(h.operator),
		TripType:         domain.DefaultTripType.String(),
		RentalDaysMin:    domain.MinRentalDays,
		RentalDaysMax:    domain.MaxRentalDays,
		RentalDays:       domain.DefaultRentalDays,
		SuccessDisplayMs: booking.SuccessDisplayDuration.Milliseconds(),
	}
}
