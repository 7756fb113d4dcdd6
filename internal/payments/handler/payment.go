package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"blinktech/internal/payments/service"
	httputil "blinktech/pkg/http"
	"blinktech/pkg/logger"
)

type PaymentHandler struct {
	service service.PaymentService
	log     *logger.Logger
}

func NewPaymentHandler(service service.PaymentService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log,
	}
}

type intentRequest struct {
	Price float64 `json:"price"`
}

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req intentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"code": "BAD_REQUEST", "message": "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateIntent", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	clientSecret, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateIntent", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, intentResponse{ClientSecret: clientSecret}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "CreateIntent", "operation", "WriteJSON", "error", err)
	}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/create-payment-intent", h.CreateIntent)
}
