package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"blinktech/internal/appointments/service"
	"blinktech/internal/auth"
	apperrors "blinktech/pkg/errors"
	httputil "blinktech/pkg/http"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

type AppointmentHandler struct {
	service service.AppointmentService
	log     *logger.Logger
}

func NewAppointmentHandler(service service.AppointmentService, log *logger.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
		log:     log,
	}
}

func (h *AppointmentHandler) ListOptions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	options, err := h.service.AvailableOptions(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListOptions", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, options); err != nil {
		h.log.Error("failed to write success response", "handler", "ListOptions", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var booking model.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"code": "BAD_REQUEST", "message": "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateBooking", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateBooking(r.Context(), &booking); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateBooking", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBooking", "operation", "WriteCreated", "error", err)
	}
}

// ListBookings serves GET /bookings. As with order listing, the caller may
// only read their own bookings; a mismatched email stops here.
func (h *AppointmentHandler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := sanitizer.NormalizeEmail(r.URL.Query().Get("email"))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Email != email {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("Token does not match requested email")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	bookings, err := h.service.ListBookings(r.Context(), email)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBookings", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBookings", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AppointmentHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.GET("/appointment-options", h.ListOptions)
	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings", guard.RequireAuth(h.ListBookings))
}
