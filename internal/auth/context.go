package auth

import (
	"context"

	"pcstore/internal/models"
)

type userKey struct{}

// WithUser returns a copy of ctx carrying the authenticated caller.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the caller stored by the auth middleware, if any.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey{}).(*models.User)
	return user, ok && user != nil
}
