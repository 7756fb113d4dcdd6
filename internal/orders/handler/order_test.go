package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"blinktech/internal/auth"
	"blinktech/internal/orders/service"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
)

type mockOrderService struct {
	createFunc      func(ctx context.Context, order *model.Order) error
	getByIDFunc     func(ctx context.Context, id string) (*model.Order, error)
	listByEmailFunc func(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error)
	removeLineFunc  func(ctx context.Context, orderID, productID string) (*service.UpdateAck, error)
	patchLineFunc   func(ctx context.Context, orderID, productID, status string) (*service.UpdateAck, error)
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockOrderService) Create(ctx context.Context, order *model.Order) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, order)
	}
	return nil
}

func (m *mockOrderService) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockOrderService) ListByEmail(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error) {
	if m.listByEmailFunc != nil {
		return m.listByEmailFunc(ctx, email, page, size)
	}
	return []*model.Order{}, 0, nil
}

func (m *mockOrderService) RemoveLine(ctx context.Context, orderID, productID string) (*service.UpdateAck, error) {
	if m.removeLineFunc != nil {
		return m.removeLineFunc(ctx, orderID, productID)
	}
	return &service.UpdateAck{}, nil
}

func (m *mockOrderService) PatchLineStatus(ctx context.Context, orderID, productID, status string) (*service.UpdateAck, error) {
	if m.patchLineFunc != nil {
		return m.patchLineFunc(ctx, orderID, productID, status)
	}
	return &service.UpdateAck{}, nil
}

func (m *mockOrderService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func testHandler(svc service.OrderService) *OrderHandler {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	return NewOrderHandler(svc, log)
}

func TestListByEmail_EmailMismatchIsForbidden(t *testing.T) {
	serviceCalled := false
	svc := &mockOrderService{
		listByEmailFunc: func(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error) {
			serviceCalled = true
			return nil, 0, nil
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
		{"case folded match", &auth.Claims{Email: "buyer@example.com"}, "Buyer@Example.COM", http.StatusOK},
		{"other user's email", &auth.Claims{Email: "buyer@example.com"}, "victim@example.com", http.StatusForbidden},
		{"no claims attached", nil, "buyer@example.com", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceCalled = false

			r := httptest.NewRequest(http.MethodGet, "/orders?email="+tt.queryEmail, nil)
			if tt.claims != nil {
				r = r.WithContext(auth.ContextWithClaims(r.Context(), tt.claims))
			}
			w := httptest.NewRecorder()

			h.ListByEmail(w, r, nil)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusForbidden && serviceCalled {
				t.Error("service invoked despite email mismatch")
			}
			if tt.wantStatus == http.StatusOK && !serviceCalled {
				t.Error("service not invoked for matching email")
			}
		})
	}
}

func TestListByEmail_ResponseShape(t *testing.T) {
	svc := &mockOrderService{
		listByEmailFunc: func(ctx context.Context, email string, page, size int64) ([]*model.Order, int64, error) {
			return []*model.Order{{ID: "66cf1f77bcf86cd799439099", Email: email}}, 7, nil
		},
	}
	h := testHandler(svc)

	r := httptest.NewRequest(http.MethodGet, "/orders?email=buyer@example.com", nil)
	r = r.WithContext(auth.ContextWithClaims(r.Context(), &auth.Claims{Email: "buyer@example.com"}))
	w := httptest.NewRecorder()

	h.ListByEmail(w, r, nil)

	var raw map[string]json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if _, ok := raw["orders"]; !ok {
		t.Fatalf("response keys = %v, want count and orders", keysOf(raw))
	}

	var count int64
	if err := json.Unmarshal(raw["count"], &count); err != nil {
		t.Fatalf("invalid count field: %v", err)
	}
	if count != 7 {
		t.Errorf("count = %d, want 7", count)
	}

	var orders []*model.Order
	if err := json.Unmarshal(raw["orders"], &orders); err != nil {
		t.Fatalf("invalid orders field: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("got %d orders, want 1", len(orders))
	}
}

func keysOf(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func TestRemoveLine_PassesRouteAndBodyParams(t *testing.T) {
	var gotOrderID, gotProductID string
	svc := &mockOrderService{
		removeLineFunc: func(ctx context.Context, orderID, productID string) (*service.UpdateAck, error) {
			gotOrderID = orderID
			gotProductID = productID
			return &service.UpdateAck{MatchedCount: 1, ModifiedCount: 1}, nil
		},
	}
	h := testHandler(svc)

	body := `{"productId":"507f1f77bcf86cd799439011"}`
	r := httptest.NewRequest(http.MethodPut, "/orders/66cf1f77bcf86cd799439099", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	h.RemoveLine(w, r, httprouter.Params{{Key: "id", Value: "66cf1f77bcf86cd799439099"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotOrderID != "66cf1f77bcf86cd799439099" || gotProductID != "507f1f77bcf86cd799439011" {
		t.Errorf("service called with (%q, %q)", gotOrderID, gotProductID)
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	h := testHandler(&mockOrderService{
		createFunc: func(ctx context.Context, order *model.Order) error {
			t.Fatal("service invoked for malformed body")
			return nil
		},
	})

	r := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	h.Create(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
