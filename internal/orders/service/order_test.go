package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	orderserrors "blinktech/internal/orders/errors"
	"blinktech/internal/orders/repository"
	"blinktech/internal/orders/validator"
	"blinktech/pkg/config"
	mongotx "blinktech/pkg/db/mongo"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/kafka"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
)

type mockOrderRepository struct {
	createFunc       func(ctx context.Context, order *model.Order) error
	findByID         func(ctx context.Context, id string) (*model.Order, error)
	findByEmailFunc  func(ctx context.Context, email string, page, size int64) ([]*model.Order, error)
	countByEmailFunc func(ctx context.Context, email string) (int64, error)
	replaceLinesFunc func(ctx context.Context, id string, lines []model.OrderLine) (*mongo.UpdateResult, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderRepository) FindByEmail(ctx context.Context, email string, page, size int64) ([]*model.Order, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email, page, size)
	}
	return []*model.Order{}, nil
}

func (m *mockOrderRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	if m.countByEmailFunc != nil {
		return m.countByEmailFunc(ctx, email)
	}
	return 0, nil
}

func (m *mockOrderRepository) ReplaceLines(ctx context.Context, id string, lines []model.OrderLine) (*mongo.UpdateResult, error) {
	if m.replaceLinesFunc != nil {
		return m.replaceLinesFunc(ctx, id, lines)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ExecuteTransaction runs the callback directly; unit tests have no session.
func (m *mockOrderRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testService(repo repository.OrderRepository, pub EventPublisher) OrderService {
	log := logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
	cfg := &config.Config{
		Log:          log,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return NewOrderService(repo, validator.NewOrderValidator(log), pub, cfg)
}

func validOrder() *model.Order {
	return &model.Order{
		Email: "buyer@example.com",
		OrderInfo: []model.OrderLine{
			{ProductID: "507f1f77bcf86cd799439011", Name: "Laptop", Price: 999.99, Quantity: 1},
			{ProductID: "507f1f77bcf86cd799439012", Name: "Mouse", Price: 19.99, Quantity: 2},
		},
	}
}

func TestCreate_AssignsLineIdentityAndPublishes(t *testing.T) {
	pub := &mockPublisher{}
	repo := &mockOrderRepository{
		createFunc: func(ctx context.Context, order *model.Order) error {
			order.ID = "66cf1f77bcf86cd799439099"
			return nil
		},
	}
	svc := testService(repo, pub)

	order := validOrder()
	order.Email = "  Buyer@Example.COM "
	if err := svc.Create(context.Background(), order); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if order.Email != "buyer@example.com" {
		t.Errorf("email not normalized, got %q", order.Email)
	}

	seen := map[string]bool{}
	for _, line := range order.OrderInfo {
		if line.LineID == "" {
			t.Error("line left without an id")
		}
		if seen[line.LineID] {
			t.Errorf("duplicate line id %q", line.LineID)
		}
		seen[line.LineID] = true
		if line.Status != LineStatusPending {
			t.Errorf("line status = %q, want %q", line.Status, LineStatusPending)
		}
	}

	if len(pub.published) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.published))
	}
	if pub.published[0].Key != order.ID {
		t.Errorf("event key = %q, want order id %q", pub.published[0].Key, order.ID)
	}
}

func TestCreate_ValidationFailureSkipsRepo(t *testing.T) {
	repoCalled := false
	repo := &mockOrderRepository{
		createFunc: func(ctx context.Context, order *model.Order) error {
			repoCalled = true
			return nil
		},
	}
	svc := testService(repo, nil)

	tests := []struct {
		name  string
		order *model.Order
	}{
		{"missing email", &model.Order{OrderInfo: validOrder().OrderInfo}},
		{"no lines", &model.Order{Email: "buyer@example.com"}},
		{"bad product id", &model.Order{
			Email:     "buyer@example.com",
			OrderInfo: []model.OrderLine{{ProductID: "nope", Name: "Laptop", Price: 10, Quantity: 1}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(context.Background(), tt.order)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeValidation {
				t.Errorf("error = %v, want VALIDATION_ERROR", err)
			}
			if repoCalled {
				t.Error("repository called despite validation failure")
			}
		})
	}
}

func TestCreate_PublishFailureDoesNotFailOrder(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker down")}
	svc := testService(&mockOrderRepository{}, pub)

	if err := svc.Create(context.Background(), validOrder()); err != nil {
		t.Fatalf("create failed on publish error: %v", err)
	}
}

func TestRemoveLine_RemovesOnlyMatchingLine(t *testing.T) {
	stored := validOrder()
	stored.ID = "66cf1f77bcf86cd799439099"

	var replaced []model.OrderLine
	repo := &mockOrderRepository{
		findByID: func(ctx context.Context, id string) (*model.Order, error) {
			return stored, nil
		},
		replaceLinesFunc: func(ctx context.Context, id string, lines []model.OrderLine) (*mongo.UpdateResult, error) {
			replaced = lines
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc := testService(repo, nil)

	ack, err := svc.RemoveLine(context.Background(), stored.ID, "507f1f77bcf86cd799439011")
	if err != nil {
		t.Fatalf("RemoveLine returned error: %v", err)
	}
	if ack.ModifiedCount != 1 {
		t.Errorf("modified count = %d, want 1", ack.ModifiedCount)
	}
	if len(replaced) != 1 {
		t.Fatalf("kept %d lines, want 1", len(replaced))
	}
	if replaced[0].ProductID != "507f1f77bcf86cd799439012" {
		t.Errorf("wrong line kept: %q", replaced[0].ProductID)
	}
}

func TestRemoveLine_UnknownProductIsNotFound(t *testing.T) {
	repo := &mockOrderRepository{
		findByID: func(ctx context.Context, id string) (*model.Order, error) {
			return validOrder(), nil
		},
		replaceLinesFunc: func(ctx context.Context, id string, lines []model.OrderLine) (*mongo.UpdateResult, error) {
			t.Fatal("lines replaced for a missing product")
			return nil, nil
		},
	}
	svc := testService(repo, nil)

	_, err := svc.RemoveLine(context.Background(), "66cf1f77bcf86cd799439099", "507f1f77bcf86cd799439099")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestPatchLineStatus_PatchesOnlyAddressedLine(t *testing.T) {
	stored := validOrder()
	stored.ID = "66cf1f77bcf86cd799439099"
	stored.OrderInfo[0].Status = LineStatusPending
	stored.OrderInfo[1].Status = LineStatusPending

	var replaced []model.OrderLine
	repo := &mockOrderRepository{
		findByID: func(ctx context.Context, id string) (*model.Order, error) {
			return stored, nil
		},
		replaceLinesFunc: func(ctx context.Context, id string, lines []model.OrderLine) (*mongo.UpdateResult, error) {
			replaced = lines
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc := testService(repo, nil)

	_, err := svc.PatchLineStatus(context.Background(), stored.ID, "507f1f77bcf86cd799439012", "  Shipped ")
	if err != nil {
		t.Fatalf("PatchLineStatus returned error: %v", err)
	}

	if replaced[0].Status != LineStatusPending {
		t.Errorf("untouched line status changed to %q", replaced[0].Status)
	}
	if replaced[1].Status != "shipped" {
		t.Errorf("patched line status = %q, want %q", replaced[1].Status, "shipped")
	}
}

func TestPatchLineStatus_EmptyStatus(t *testing.T) {
	svc := testService(&mockOrderRepository{}, nil)

	_, err := svc.PatchLineStatus(context.Background(), "66cf1f77bcf86cd799439099", "507f1f77bcf86cd799439011", "   ")
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestListByEmail_ReturnsCountAndPage(t *testing.T) {
	repo := &mockOrderRepository{
		countByEmailFunc: func(ctx context.Context, email string) (int64, error) {
			return 42, nil
		},
		findByEmailFunc: func(ctx context.Context, email string, page, size int64) ([]*model.Order, error) {
			if email != "buyer@example.com" {
				t.Errorf("email not normalized before query: %q", email)
			}
			if page != 2 || size != 10 {
				t.Errorf("page/size = %d/%d, want 2/10", page, size)
			}
			return []*model.Order{validOrder()}, nil
		},
	}
	svc := testService(repo, nil)

	orders, count, err := svc.ListByEmail(context.Background(), " Buyer@Example.com ", 2, 10)
	if err != nil {
		t.Fatalf("ListByEmail returned error: %v", err)
	}
	if count != 42 {
		t.Errorf("count = %d, want 42", count)
	}
	if len(orders) != 1 {
		t.Errorf("got %d orders, want 1", len(orders))
	}
}

func TestGetByID_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"not found", fmt.Errorf("%w: abc", orderserrors.ErrNotFound), apperrors.CodeNotFound},
		{"invalid id", fmt.Errorf("%w: abc", orderserrors.ErrInvalidID), apperrors.CodeInvalidInput},
		{"store failure", errors.New("connection reset"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockOrderRepository{
				findByID: func(ctx context.Context, id string) (*model.Order, error) {
					return nil, tt.repoErr
				},
			}
			svc := testService(repo, nil)

			_, err := svc.GetByID(context.Background(), "66cf1f77bcf86cd799439099")
			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}
