package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"blinktech/internal/auth"
	"blinktech/internal/orders/service"
	apperrors "blinktech/pkg/errors"
	httputil "blinktech/pkg/http"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
	"blinktech/pkg/sanitizer"
)

type OrderHandler struct {
	service service.OrderService
	log     *logger.Logger
}

func NewOrderHandler(service service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log,
	}
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var order model.Order
	if err := json.NewDecoder(r.Body).Decode(&order); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"code": "BAD_REQUEST", "message": "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &order); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, order); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

// ListByEmail serves GET /orders. The caller may only list their own orders:
// the email query parameter must match the token's email claim, and on a
// mismatch the request stops here without touching the service.
func (h *OrderHandler) ListByEmail(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	email := sanitizer.NormalizeEmail(r.URL.Query().Get("email"))

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.Email != email {
		if writeErr := httputil.WriteError(w, apperrors.Forbidden("Token does not match requested email")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByEmail", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	page, size, err := httputil.ExtractPageSize(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByEmail", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	orders, count, err := h.service.ListByEmail(r.Context(), email, page, size)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListByEmail", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, listResponse{Count: count, Orders: orders}); err != nil {
		h.log.Error("failed to write list response", "handler", "ListByEmail", "operation", "WriteJSON", "error", err)
	}
}

type listResponse struct {
	Count  int64          `json:"count"`
	Orders []*model.Order `json:"orders"`
}

type lineRequest struct {
	ProductID string `json:"productId"`
	Status    string `json:"status"`
}

func (h *OrderHandler) RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"code": "BAD_REQUEST", "message": "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "RemoveLine", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	ack, err := h.service.RemoveLine(r.Context(), ps.ByName("id"), req.ProductID)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RemoveLine", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ack); err != nil {
		h.log.Error("failed to write success response", "handler", "RemoveLine", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) PatchLineStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"code": "BAD_REQUEST", "message": "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "PatchLineStatus", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	ack, err := h.service.PatchLineStatus(r.Context(), ps.ByName("id"), req.ProductID, req.Status)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "PatchLineStatus", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ack); err != nil {
		h.log.Error("failed to write success response", "handler", "PatchLineStatus", "operation", "WriteSuccess", "error", err)
	}
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *OrderHandler) RegisterRoutes(router *httprouter.Router, guard *auth.Guard) {
	router.POST("/orders", h.Create)
	router.GET("/orders", guard.RequireAuth(h.ListByEmail))
	router.PUT("/orders/:id", h.RemoveLine)
	router.PATCH("/orders/:id", guard.RequireAuth(h.PatchLineStatus))
	router.DELETE("/orders/:id", h.Delete)
}
