package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blinktech/internal/appointments/service"
	"blinktech/internal/auth"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
)

type mockAppointmentService struct {
	availableOptionsFunc func(ctx context.Context, date string) ([]*model.AppointmentOption, error)
	createBookingFunc    func(ctx context.Context, booking *model.Booking) error
	listBookingsFunc     func(ctx context.Context, email string) ([]*model.Booking, error)
}

func (m *mockAppointmentService) AvailableOptions(ctx context.Context, date string) ([]*model.AppointmentOption, error) {
	if m.availableOptionsFunc != nil {
		return m.availableOptionsFunc(ctx, date)
	}
	return []*model.AppointmentOption{}, nil
}

func (m *mockAppointmentService) CreateBooking(ctx context.Context, booking *model.Booking) error {
	if m.createBookingFunc != nil {
		return m.createBookingFunc(ctx, booking)
	}
	return nil
}

func (m *mockAppointmentService) ListBookings(ctx context.Context, email string) ([]*model.Booking, error) {
	if m.listBookingsFunc != nil {
		return m.listBookingsFunc(ctx, email)
	}
	return []*model.Booking{}, nil
}

func testHandler(svc service.AppointmentService) *AppointmentHandler {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewAppointmentHandler(svc, log)
}

func TestListBookings_EmailMismatchIsForbidden(t *testing.T) {
	serviceCalled := false
	svc := &mockAppointmentService{
		listBookingsFunc: func(ctx context.Context, email string) ([]*model.Booking, error) {
			serviceCalled = true
			return []*model.Booking{}, nil
		},
	}
	h := testHandler(svc)

	tests := []struct {
		name       string
		claims     *auth.Claims
		queryEmail string
		wantStatus int
	}{
		{"matching email", &auth.Claims{Email: "buyer@example.com"}, "buyer@example.com", http.StatusOK},
		{"other user's email", &auth.Claims{Email: "buyer@example.com"}, "victim@example.com", http.StatusForbidden},
		{"no claims attached", nil, "buyer@example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceCalled = false

			r := httptest.NewRequest(http.MethodGet, "/bookings?email="+tt.queryEmail, nil)
			if tt.claims != nil {
				r = r.WithContext(auth.ContextWithClaims(r.Context(), tt.claims))
			}
			w := httptest.NewRecorder()

			h.ListBookings(w, r, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden && serviceCalled {
				t.Error("service invoked despite email mismatch")
			}
		})
	}
}

func TestListOptions_PassesDate(t *testing.T) {
	svc := &mockAppointmentService{
		availableOptionsFunc: func(ctx context.Context, date string) ([]*model.AppointmentOption, error) {
			if date != "2026-09-01" {
				t.Errorf("date = %q", date)
			}
			return []*model.AppointmentOption{{Name: "Diagnostics", Slots: []string{"9am"}}}, nil
		},
	}
	h := testHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/appointment-options?date=2026-09-01", nil)
	w := httptest.NewRecorder()

	h.ListOptions(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Data []*model.AppointmentOption `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].Name != "Diagnostics" {
		t.Errorf("unexpected payload: %+v", body.Data)
	}
}
