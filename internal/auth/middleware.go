package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	apperrors "blinktech/pkg/errors"
	httputil "blinktech/pkg/http"
	"blinktech/pkg/logger"
	"blinktech/pkg/model"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// UserFinder resolves the stored user document for a token's email claim.
// internal/users provides the Mongo-backed implementation.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Guard gates protected routes. RequireAuth must wrap every protected
// handler; RequireAdmin additionally checks the stored role and therefore
// always composes on top of RequireAuth.
type Guard struct {
	tokens *TokenService
	users  UserFinder
	log    *logger.Logger
}

func NewGuard(tokens *TokenService, users UserFinder, log *logger.Logger) *Guard {
	return &Guard{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

// ClaimsFromContext returns the verified claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// ContextWithClaims attaches claims the way RequireAuth does.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func (g *Guard) RequireAuth(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			g.reject(w, r, apperrors.Unauthorized("Authorization header is required"))
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			g.reject(w, r, apperrors.Unauthorized("Authorization header must be 'Bearer <token>'"))
			return
		}

		claims, err := g.tokens.Verify(tokenString)
		if err != nil {
			g.reject(w, r, apperrors.Forbidden("Token is invalid or expired"))
			return
		}

		next(w, r.WithContext(ContextWithClaims(r.Context(), claims)), ps)
	}
}

func (g *Guard) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return g.RequireAuth(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			g.reject(w, r, apperrors.Unauthorized("Authorization is required"))
			return
		}

		user, err := g.users.FindByEmail(r.Context(), claims.Email)
		if err != nil || user == nil || !user.IsAdmin() {
			g.reject(w, r, apperrors.Forbidden("Admin role is required"))
			return
		}

		next(w, r, ps)
	})
}

func (g *Guard) reject(w http.ResponseWriter, r *http.Request, appErr *apperrors.AppError) {
	g.log.Warn("Request rejected by access guard",
		"path", r.URL.Path,
		"method", r.Method,
		"code", appErr.Code,
	)
	if err := httputil.WriteError(w, appErr); err != nil {
		g.log.Error("failed to write error response", "operation", "WriteError", "error", err)
	}
}
