package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blinktech/pkg/logger"
)

func TestRootHandler_PlainTextBanner(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	rootHandler(log)(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if got := w.Body.String(); got != "Blink Tech Connected" {
		t.Errorf("body = %q, want %q", got, "Blink Tech Connected")
	}
}
