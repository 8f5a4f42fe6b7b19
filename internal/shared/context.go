// Package shared holds request-scoped helpers used across handler packages.
package shared

import (
	"context"

	"github.com/antigravity-hq/antigravity/backend/internal/models"
)

type userCtxKey struct{}

// ContextWithUser attaches the resolved user identity to the request context.
func ContextWithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the identity attached by the auth guard.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userCtxKey{}).(*models.User)
	return user, ok
}
