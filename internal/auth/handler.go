package auth

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	apperrors "blinktech/pkg/errors"
	httputil "blinktech/pkg/http"
	"blinktech/pkg/logger"
	"blinktech/pkg/sanitizer"
)

type TokenHandler struct {
	tokens *TokenService
	log    *logger.Logger
}

func NewTokenHandler(tokens *TokenService, log *logger.Logger) *TokenHandler {
	return &TokenHandler{
		tokens: tokens,
		log:    log,
	}
}

type tokenRequest struct {
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Invalid request body")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	email := sanitizer.NormalizeEmail(req.Email)
	if email == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("email is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	token, err := h.tokens.Issue(email)
	if err != nil {
		h.log.Error("Failed to issue token", "error", err)
		if writeErr := httputil.WriteError(w, apperrors.Internal("Failed to issue token", err)); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Issue", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, tokenResponse{Token: token}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Issue", "operation", "WriteJSON", "error", err)
	}
}

func (h *TokenHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/jwt", h.Issue)
}
