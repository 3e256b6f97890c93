package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/micabspune/micabs/internal/notify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noLimit(next http.Handler) http.Handler { return next }

func bookingMux(sender *mock.Sender) *http.ServeMux {
	mux := http.NewServeMux()
	NewBookingHandler(sender, testLogger()).RegisterRoutes(mux, noLimit)
	return mux
}

func validTripFields() map[string]string {
	return map[string]string{
		"tripType":   "round",
		"pickup":     "Deccan, Pune",
		"drop":       "Mahabaleshwar",
		"date":       "2026-09-15",
		"time":       "09:00",
		"returnDate": "2026-09-17",
		"returnTime": "18:00",
		"name":       "Asha Kulkarni",
		"phone":      "+91 9876543210",
	}
}

func postJSON(t *testing.T, mux *http.ServeMux, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBooking(t *testing.T, rec *httptest.ResponseRecorder) bookingResponse {
	t.Helper()
	var body bookingResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestBookingSubmit_Success(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	rec := postJSON(t, mux, "/book", validTripFields())

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBooking(t, rec)
	if body.Message != "Your booking request has been sent successfully! We will contact you shortly." {
		t.Errorf("unexpected message: %q", body.Message)
	}
	if !strings.HasPrefix(body.Ref, "MI-") {
		t.Errorf("expected MI- booking ref, got %q", body.Ref)
	}
	if body.CloseAfterMs != 2000 {
		t.Errorf("expected closeAfterMs=2000, got %d", body.CloseAfterMs)
	}
	if sender.TripCalls != 1 {
		t.Errorf("expected 1 delivery call, got %d", sender.TripCalls)
	}
}

func TestBookingSubmit_FormEncoded(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	values := url.Values{}
	for name, value := range validTripFields() {
		values.Set(name, value)
	}
	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sender.TripCalls != 1 {
		t.Errorf("expected 1 delivery call, got %d", sender.TripCalls)
	}
}

func TestBookingSubmit_MissingFields(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	fields := validTripFields()
	delete(fields, "returnDate")
	fields["returnTime"] = ""
	rec := postJSON(t, mux, "/book", fields)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBooking(t, rec)
	if body.Error != "Missing required fields" {
		t.Errorf("unexpected error: %q", body.Error)
	}
	if !strings.Contains(body.Message, "returnDate") || !strings.Contains(body.Message, "returnTime") {
		t.Errorf("message should name the missing fields, got %q", body.Message)
	}
	if body.Ref != "" {
		t.Errorf("validation failures must not assign a booking ref, got %q", body.Ref)
	}
	if sender.TripCalls != 0 {
		t.Errorf("no delivery may be attempted on validation failure, got %d calls", sender.TripCalls)
	}
}

func TestBookingSubmit_OneWayDoesNotRequireReturnLeg(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	fields := validTripFields()
	fields["tripType"] = "oneway"
	delete(fields, "returnDate")
	delete(fields, "returnTime")
	rec := postJSON(t, mux, "/book", fields)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBookingSubmit_DeliveryFailure(t *testing.T) {
	sender := mock.New(nil)
	sender.TripError = errors.New("smtp connection refused")
	mux := bookingMux(sender)

	rec := postJSON(t, mux, "/book", validTripFields())

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBooking(t, rec)
	if body.Error != "Failed to send booking request" {
		t.Errorf("unexpected error: %q", body.Error)
	}
}

func TestBookingSubmit_MalformedJSON(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	req := httptest.NewRequest(http.MethodPost, "/book", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if sender.TripCalls != 0 {
		t.Errorf("expected no delivery calls, got %d", sender.TripCalls)
	}
}

func TestBookingSubmit_UnknownFieldsIgnored(t *testing.T) {
	sender := mock.New(nil)
	mux := bookingMux(sender)

	fields := validTripFields()
	fields["csrf_token"] = "abc"
	fields["admin"] = "true"
	rec := postJSON(t, mux, "/book", fields)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
