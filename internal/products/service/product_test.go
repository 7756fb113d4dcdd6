package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	productserrors "blinktech/internal/products/errors"
	"blinktech/internal/products/repository"
	"blinktech/internal/products/validator"
	"blinktech/pkg/config"
	apperrors "blinktech/pkg/errors"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
)

type mockProductRepository struct {
	createFunc  func(ctx context.Context, product *model.Product) error
	findByID    func(ctx context.Context, id string) (*model.Product, error)
	findAllFunc func(ctx context.Context, search string, order repository.SortOrder, limit, skip int64) ([]*model.Product, error)
	updateFunc  func(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockProductRepository) Create(ctx context.Context, product *model.Product) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, product)
	}
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockProductRepository) FindAll(ctx context.Context, search string, order repository.SortOrder, limit, skip int64) ([]*model.Product, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, search, order, limit, skip)
	}
	return []*model.Product{}, nil
}

func (m *mockProductRepository) Update(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, fields)
	}
	return &mongo.UpdateResult{}, nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testService(repo repository.ProductRepository) ProductService {
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
	return NewProductService(repo, validator.NewProductValidator(log), cfg)
}

func TestList_SortOrderMapping(t *testing.T) {
	tests := []struct {
		name      string
		order     string
		expectAsc bool
	}{
		{"ascending", "asc", true},
		{"descending", "desc", false},
		{"anything else descends", "bogus", false},
		{"empty descends", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOrder repository.SortOrder
			repo := &mockProductRepository{
				findAllFunc: func(ctx context.Context, search string, order repository.SortOrder, limit, skip int64) ([]*model.Product, error) {
					gotOrder = order
					return []*model.Product{}, nil
				},
			}
			svc := testService(repo)

			if _, err := svc.List(context.Background(), "", tt.order); err != nil {
				t.Fatalf("List() failed: %v", err)
			}

			wantOrder := repository.SortDescending
			if tt.expectAsc {
				wantOrder = repository.SortAscending
			}
			if gotOrder != wantOrder {
				t.Errorf("order = %s, want %s", gotOrder, wantOrder)
			}
		})
	}
}

func TestList_SearchTermSanitized(t *testing.T) {
	var gotSearch string
	repo := &mockProductRepository{
		findAllFunc: func(ctx context.Context, search string, order repository.SortOrder, limit, skip int64) ([]*model.Product, error) {
			gotSearch = search
			return []*model.Product{}, nil
		},
	}
	svc := testService(repo)

	if _, err := svc.List(context.Background(), "  lap${}top  ", "asc"); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if gotSearch != "laptop" {
		t.Errorf("search = %q, want %q", gotSearch, "laptop")
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	repo := &mockProductRepository{
		createFunc: func(ctx context.Context, product *model.Product) error {
			t.Fatal("repository must not be called when validation fails")
			return nil
		},
	}
	svc := testService(repo)

	err := svc.Create(context.Background(), &model.Product{Name: "x"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeValidation)
	}
}

func TestGetByID_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		wantCode string
	}{
		{"not found", fmt.Errorf("%w: abc", productserrors.ErrNotFound), apperrors.CodeNotFound},
		{"invalid id", fmt.Errorf("%w: abc", productserrors.ErrInvalidID), apperrors.CodeInvalidInput},
		{"store failure", fmt.Errorf("connection reset"), apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProductRepository{
				findByID: func(ctx context.Context, id string) (*model.Product, error) {
					return nil, tt.repoErr
				},
			}
			svc := testService(repo)

			_, err := svc.GetByID(context.Background(), "abc")
			if err == nil {
				t.Fatal("expected error")
			}
			appErr := apperrors.AsAppError(err)
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestUpdate_BuildsPartialFieldSet(t *testing.T) {
	var gotFields bson.M
	repo := &mockProductRepository{
		updateFunc: func(ctx context.Context, id string, fields bson.M) (*mongo.UpdateResult, error) {
			gotFields = fields
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	svc := testService(repo)

	price := 19.99
	trending := true
	ack, err := svc.Update(context.Background(), "665f1f77bcf86cd799439011", &model.ProductUpdate{
		Name:     "Gaming  Laptop",
		Price:    &price,
		Trending: &trending,
	})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	if len(gotFields) != 3 {
		t.Fatalf("expected 3 fields, got %d: %v", len(gotFields), gotFields)
	}
	if gotFields["name"] != "Gaming Laptop" {
		t.Errorf("name = %v, want normalized 'Gaming Laptop'", gotFields["name"])
	}
	if gotFields["price"] != 19.99 {
		t.Errorf("price = %v, want 19.99", gotFields["price"])
	}
	if gotFields["trending"] != true {
		t.Errorf("trending = %v, want true", gotFields["trending"])
	}
	if ack.ModifiedCount != 1 {
		t.Errorf("ack.ModifiedCount = %d, want 1", ack.ModifiedCount)
	}
}

func TestUpdate_NoFields(t *testing.T) {
	svc := testService(&mockProductRepository{})

	_, err := svc.Update(context.Background(), "665f1f77bcf86cd799439011", &model.ProductUpdate{})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
	appErr := apperrors.AsAppError(err)
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}
}
