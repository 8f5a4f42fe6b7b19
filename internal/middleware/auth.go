package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/antigravity-hq/antigravity/backend/internal/apperr"
	"github.com/antigravity-hq/antigravity/backend/internal/auth"
	"github.com/antigravity-hq/antigravity/backend/internal/models"
	"github.com/antigravity-hq/antigravity/backend/internal/shared"
)

// UserResolver loads the user record a verified token points at.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth validates the bearer token on each request, resolves it to
// the owning user record and attaches the identity to the request context.
// Malformed, expired and badly signed tokens are deliberately not
// distinguished to the caller.
func RequireAuth(tokens *auth.TokenManager, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				apperr.WriteError(w, apperr.Auth("not authorized to access this route"))
				return
			}

			claims, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				apperr.WriteError(w, apperr.Auth("not authorized to access this route"))
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				apperr.WriteError(w, apperr.NotFound("no user found with this id"))
				return
			}

			next.ServeHTTP(w, r.WithContext(shared.ContextWithUser(r.Context(), user)))
		})
	}
}
