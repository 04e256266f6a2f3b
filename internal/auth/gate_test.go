package auth_test

import (
	"context"
	"testing"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuthenticated(t *testing.T) {
	_, err := auth.RequireAuthenticated(context.Background())
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	ctx := auth.WithUser(context.Background(), &models.User{ID: 3})
	user, err := auth.RequireAuthenticated(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint(3), user.ID)
}

func TestRequireAuthenticated_NilUser(t *testing.T) {
	ctx := auth.WithUser(context.Background(), nil)
	_, err := auth.RequireAuthenticated(ctx)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestRequireStaff(t *testing.T) {
	_, err := auth.RequireStaff(context.Background())
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))

	customerCtx := auth.WithUser(context.Background(), &models.User{ID: 1})
	_, err = auth.RequireStaff(customerCtx)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	staffCtx := auth.WithUser(context.Background(), &models.User{ID: 2, IsStaff: true})
	user, err := auth.RequireStaff(staffCtx)
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
}

func TestRequireSelfOrStaff(t *testing.T) {
	tests := []struct {
		name    string
		caller  *models.User
		target  uint
		wantErr error
	}{
		{name: "anonymous", caller: nil, target: 1, wantErr: apperr.ErrUnauthenticated},
		{name: "self", caller: &models.User{ID: 1}, target: 1},
		{name: "other user", caller: &models.User{ID: 1}, target: 2, wantErr: apperr.ErrForbidden},
		{name: "staff on other user", caller: &models.User{ID: 1, IsStaff: true}, target: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.caller != nil {
				ctx = auth.WithUser(ctx, tt.caller)
			}
			_, err := auth.RequireSelfOrStaff(ctx, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
