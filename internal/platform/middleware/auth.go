package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	id "devdeck/pkg/domain"
)

// JWTValidator defines the interface for validating JWT tokens
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator
type JWTClaims struct {
	AccountID id.AccountID
}

// Context keys for storing authenticated caller information
type contextKeyAccountID struct{}

// ContextKeyAccountID is exported for use in handlers and tests
var ContextKeyAccountID = contextKeyAccountID{}

// GetAccountID retrieves the authenticated caller's account ID from the
// context. Returns the zero value when the request was not authenticated.
func GetAccountID(ctx context.Context) id.AccountID {
	accountID, ok := ctx.Value(ContextKeyAccountID).(id.AccountID)
	if !ok {
		return id.AccountID{}
	}
	return accountID
}

// WithAccountID injects a caller identity into the context. Useful for tests
// that bypass the HTTP middleware chain.
func WithAccountID(ctx context.Context, accountID id.AccountID) context.Context {
	return context.WithValue(ctx, ContextKeyAccountID, accountID)
}

// RequireAuth resolves the caller identity from a Bearer token and rejects
// requests without a valid one. Mutating card routes sit behind this; reads
// are public and skip it.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				unauthorized(w, r, logger, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				unauthorized(w, r, logger, "Invalid or expired token")
				return
			}

			ctx := WithAccountID(r.Context(), claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, err := w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to write unauthorized response",
			"error", err,
			"request_id", GetRequestID(r.Context()),
		)
	}
}
