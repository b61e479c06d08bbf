package testutil

import (
	"net/http"

	"devdeck/internal/platform/middleware"
	id "devdeck/pkg/domain"
)

// WithAccount adds a caller identity to the request context.
// This simulates what the auth middleware would do for authenticated requests.
// If the accountID is not a valid UUID, it will not be added to the context.
func WithAccount(req *http.Request, accountID string) *http.Request {
	parsed, err := id.ParseAccountID(accountID)
	if err != nil {
		return req
	}
	ctx := middleware.WithAccountID(req.Context(), parsed)
	return req.WithContext(ctx)
}

// WithAccountID adds an already-typed caller identity to the request context.
func WithAccountID(req *http.Request, accountID id.AccountID) *http.Request {
	ctx := middleware.WithAccountID(req.Context(), accountID)
	return req.WithContext(ctx)
}
