package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	appterrors "blinktech/internal/appointments/errors"
	"blinktech/internal/appointments/repository"
	"blinktech/internal/appointments/validator"
	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/kafka"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

const (
	eventTypeBookingCreated = "booking.created"
	eventSource             = "blinktech.appointments"
)

// EventPublisher is the slice of the Kafka producer the appointment service
// needs. A nil publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type AppointmentService interface {
	// AvailableOptions returns every option template with its slot list
	// reduced to the slots still free on the given date.
	AvailableOptions(ctx context.Context, date string) ([]*model.AppointmentOption, error)
	CreateBooking(ctx context.Context, booking *model.Booking) error
	ListBookings(ctx context.Context, email string) ([]*model.Booking, error)
}

type appointmentService struct {
	options   repository.OptionRepository
	bookings  repository.BookingRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewAppointmentService(
	options repository.OptionRepository,
	bookings repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher EventPublisher,
	cfg *config.Config,
) AppointmentService {
	return &appointmentService{
		options:   options,
		bookings:  bookings,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *appointmentService) AvailableOptions(ctx context.Context, date string) ([]*model.AppointmentOption, error) {
	date = sanitizer.TrimAndNormalize(date)
	if date == "" {
		return nil, apperrors.InvalidInput("Date is required")
	}

	templates, err := s.options.FindAll(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load appointment options", "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointment options", err)
	}

	booked, err := s.bookings.FindByDate(ctx, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load bookings for date", "date", date, "error", err)
		return nil, apperrors.Internal("Failed to retrieve appointment options", err)
	}

	// Slots already booked, grouped by service name.
	taken := make(map[string]map[string]struct{}, len(booked))
	for _, b := range booked {
		if taken[b.Service] == nil {
			taken[b.Service] = make(map[string]struct{})
		}
		taken[b.Service][b.Slot] = struct{}{}
	}

	for _, tmpl := range templates {
		tmpl.Slots = availableSlots(tmpl.Slots, taken[tmpl.Name])
	}

	return templates, nil
}

// availableSlots filters out booked slots while keeping template order.
func availableSlots(template []string, booked map[string]struct{}) []string {
	if len(booked) == 0 {
		return template
	}
	free := make([]string, 0, len(template))
	for _, slot := range template {
		if _, ok := booked[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}

func (s *appointmentService) CreateBooking(ctx context.Context, booking *model.Booking) error {
	booking.Email = sanitizer.NormalizeEmail(booking.Email)
	booking.Service = sanitizer.NormalizeServiceName(booking.Service)

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	// Pre-check plus insert in one transaction; the unique index on
	// (appointment_date, service, email) backstops concurrent inserts.
	err := s.bookings.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		exists, err := s.bookings.Exists(sessCtx, booking.AppointmentDate, booking.Service, booking.Email)
		if err != nil {
			return err
		}
		if exists {
			return appterrors.ErrDuplicateBooking
		}
		return s.bookings.Create(sessCtx, booking)
	})
	if err != nil {
		if errors.Is(err, appterrors.ErrDuplicateBooking) {
			return apperrors.Conflict("A booking already exists for this date, service and email")
		}
		if apperrors.IsAppError(err) {
			return err
		}
		s.cfg.Log.Error("Failed to create booking", "email", booking.Email, "error", err)
		return apperrors.Internal("Failed to create booking", err)
	}

	s.publishCreated(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"service", booking.Service,
		"date", booking.AppointmentDate,
	)
	return nil
}

func (s *appointmentService) ListBookings(ctx context.Context, email string) ([]*model.Booking, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	bookings, err := s.bookings.FindByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "email", email, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, nil
}

// publishCreated is best-effort; a broker outage never fails the booking.
func (s *appointmentService) publishCreated(ctx context.Context, booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(booking.Email).
		WithValue(booking).
		WithEventType(eventTypeBookingCreated).
		WithSource(eventSource).
		Build()
	if err != nil {
		s.cfg.Log.Warn("Failed to build booking event", "booking_id", booking.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "booking_id", booking.ID, "error", err)
	}
}
