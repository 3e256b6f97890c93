package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func securityRequest(t *testing.T, isSecure bool) *httptest.ResponseRecorder {
	t.Helper()
	mw := NewSecurityHeadersMiddleware(isSecure)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSecurityHeaders_Standard(t *testing.T) {
	rec := securityRequest(t, false)

	expected := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"X-XSS-Protection":       "1; mode=block",
		"Permissions-Policy":     "geolocation=(), microphone=(), camera=()",
	}

	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s: expected %q, got %q", header, want, got)
		}
	}
}

func TestSecurityHeaders_HSTSOnlyWhenSecure(t *testing.T) {
	if got := securityRequest(t, false).Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS should not be set in development, got %q", got)
	}

	if got := securityRequest(t, true).Header().Get("Strict-Transport-Security"); got == "" {
		t.Error("HSTS should be set when secure")
	}
}

func TestSecurityHeaders_CSP(t *testing.T) {
	csp := securityRequest(t, false).Header().Get("Content-Security-Policy")

	for _, directive := range []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'",
		"frame-ancestors 'none'",
		"form-action 'self'",
	} {
		if !strings.Contains(csp, directive) {
			t.Errorf("CSP missing directive %q: %s", directive, csp)
		}
	}
}
