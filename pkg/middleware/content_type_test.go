package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/logger"
)

func TestContentTypeValidation(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	handler := ContentTypeValidation(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
	}{
		{
			name:        "json body passes",
			method:      http.MethodPost,
			contentType: "application/json",
			body:        `{"name":"Keyboard"}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "json with charset passes",
			method:      http.MethodPost,
			contentType: "application/json; charset=utf-8",
			body:        `{"name":"Keyboard"}`,
			wantStatus:  http.StatusOK,
		},
		{
			name:        "form body rejected",
			method:      http.MethodPost,
			contentType: "application/x-www-form-urlencoded",
			body:        "name=Keyboard",
			wantStatus:  http.StatusUnsupportedMediaType,
		},
		{
			name:       "body-less patch passes",
			method:     http.MethodPatch,
			body:       "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "get skips validation",
			method:     http.MethodGet,
			body:       "",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req *http.Request
			if tt.body == "" {
				req = httptest.NewRequest(tt.method, "/orders", nil)
			} else {
				req = httptest.NewRequest(tt.method, "/orders", strings.NewReader(tt.body))
			}
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			if tt.wantStatus == http.StatusUnsupportedMediaType {
				var body apperrors.ErrorResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("failed to decode response body: %v", err)
				}
				if body.Code != apperrors.CodeUnsupportedMedia {
					t.Errorf("expected code %s, got %s", apperrors.CodeUnsupportedMedia, body.Code)
				}
			}
		})
	}
}
