package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	orderserrors "blinktech/internal/orders/errors"
	"blinktech/internal/orders/repository"
	"blinktech/internal/orders/validator"
	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/kafka"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

const (
	LineStatusPending = "pending"

	eventTypeOrderCreated = "order.created"
	eventSource           = "blinktech.orders"
)

// EventPublisher is the slice of the Kafka producer the order service needs.
// A nil publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type UpdateAck struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type OrderService interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByEmail(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error)
	RemoveLine(ctx context.Context, orderID, productID string) (*UpdateAck, error)
	PatchLineStatus(ctx context.Context, orderID, productID, status string) (*UpdateAck, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	repo      repository.OrderRepository
	validator *validator.OrderValidator
	publisher EventPublisher
	cfg       *config.Config
}

func NewOrderService(
	repo repository.OrderRepository,
	validator *validator.OrderValidator,
	publisher EventPublisher,
	cfg *config.Config,
) OrderService {
	return &orderService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *orderService) Create(ctx context.Context, order *model.Order) error {
	order.Email = sanitizer.NormalizeEmail(order.Email)

	if err := s.validator.Validate(order); err != nil {
		s.cfg.Log.Warn("Order validation failed", "error", err)
		return apperrors.Validation("Order validation failed", map[string]any{"error": err.Error()})
	}

	for i := range order.OrderInfo {
		order.OrderInfo[i].LineID = uuid.New().String()
		if order.OrderInfo[i].Status == "" {
			order.OrderInfo[i].Status = LineStatusPending
		}
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.cfg.Log.Error("Failed to create order", "email", order.Email, "error", err)
		return apperrors.Internal("Failed to create order", err)
	}

	s.publishCreated(ctx, order)

	s.cfg.Log.Info("Order created successfully", "id", order.ID, "email", order.Email, "lines", len(order.OrderInfo))
	return nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Order ID cannot be empty")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Order", id)
		}
		if errors.Is(err, orderserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid order ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve order", err)
	}

	return order, nil
}

func (s *orderService) ListByEmail(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, 0, apperrors.InvalidInput("Email cannot be empty")
	}

	count, err := s.repo.CountByEmail(ctx, email)
	if err != nil {
		s.cfg.Log.Error("Failed to count orders", "email", email, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve orders", err)
	}

	orders, err := s.repo.FindByEmail(ctx, email, page, size)
	if err != nil {
		s.cfg.Log.Error("Failed to list orders", "email", email, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve orders", err)
	}

	return orders, count, nil
}

// RemoveLine drops the line matching productID from the order. The read and
// the write run inside one transaction so concurrent patches cannot clobber
// each other's line slices.
func (s *orderService) RemoveLine(ctx context.Context, orderID, productID string) (*UpdateAck, error) {
	if orderID == "" || productID == "" {
		return nil, apperrors.InvalidInput("Order ID and product ID are required")
	}

	var ack *UpdateAck
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		order, err := s.repo.FindByID(sessCtx, orderID)
		if err != nil {
			return err
		}

		kept := make([]model.OrderLine, 0, len(order.OrderInfo))
		removed := false
		for _, line := range order.OrderInfo {
			if line.ProductID == productID {
				removed = true
				continue
			}
			kept = append(kept, line)
		}
		if !removed {
			return orderserrors.ErrLineNotFound
		}

		result, err := s.repo.ReplaceLines(sessCtx, orderID, kept)
		if err != nil {
			return err
		}
		ack = &UpdateAck{MatchedCount: result.MatchedCount, ModifiedCount: result.ModifiedCount}
		return nil
	})
	if err != nil {
		return nil, s.mapLineError(err, orderID, productID, "remove line from order")
	}

	s.cfg.Log.Info("Order line removed", "order_id", orderID, "product_id", productID)
	return ack, nil
}

func (s *orderService) PatchLineStatus(ctx context.Context, orderID, productID, status string) (*UpdateAck, error) {
	if orderID == "" || productID == "" {
		return nil, apperrors.InvalidInput("Order ID and product ID are required")
	}

	status = sanitizer.NormalizeStatus(status)
	if status == "" {
		return nil, apperrors.InvalidInput("Status cannot be empty")
	}

	var ack *UpdateAck
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		order, err := s.repo.FindByID(sessCtx, orderID)
		if err != nil {
			return err
		}

		patched := false
		for i := range order.OrderInfo {
			if order.OrderInfo[i].ProductID == productID {
				order.OrderInfo[i].Status = status
				patched = true
			}
		}
		if !patched {
			return orderserrors.ErrLineNotFound
		}

		result, err := s.repo.ReplaceLines(sessCtx, orderID, order.OrderInfo)
		if err != nil {
			return err
		}
		ack = &UpdateAck{MatchedCount: result.MatchedCount, ModifiedCount: result.ModifiedCount}
		return nil
	})
	if err != nil {
		return nil, s.mapLineError(err, orderID, productID, "patch order line status")
	}

	s.cfg.Log.Info("Order line status patched", "order_id", orderID, "product_id", productID, "status", status)
	return ack, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Order ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, orderserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Order", id)
		}
		if errors.Is(err, orderserrors.ErrInvalidID) {
			return apperrors.InvalidInput("Invalid order ID format")
		}
		s.cfg.Log.Error("Failed to delete order", "id", id, "error", err)
		return apperrors.Internal("Failed to delete order", err)
	}

	s.cfg.Log.Info("Order deleted successfully", "id", id)
	return nil
}

func (s *orderService) mapLineError(err error, orderID, productID, action string) error {
	switch {
	case errors.Is(err, orderserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Order", orderID)
	case errors.Is(err, orderserrors.ErrLineNotFound):
		return apperrors.NotFoundWithID("Order line", productID)
	case errors.Is(err, orderserrors.ErrInvalidID):
		return apperrors.InvalidInput("Invalid order ID format")
	case apperrors.IsAppError(err):
		return err
	default:
		s.cfg.Log.Error("Failed to "+action, "order_id", orderID, "product_id", productID, "error", err)
		return apperrors.Internal("Failed to "+action, err)
	}
}

// publishCreated is best-effort; a broker outage never fails the checkout.
func (s *orderService) publishCreated(ctx context.Context, order *model.Order) {
	if s.publisher == nil {
		return
	}

	msg, err := kafka.NewMessage().
		WithKey(order.ID).
		WithValue(order).
		WithEventType(eventTypeOrderCreated).
		WithSource(eventSource).
		Build()
	if err != nil {
		s.cfg.Log.Warn("Failed to build order event", "order_id", order.ID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish order event", "order_id", order.ID, "error", err)
	}
}
