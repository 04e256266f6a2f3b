// Package auth carries the caller identity through request contexts and exposes
// the capability checks every privileged operation calls before doing work.
package auth

import (
	"context"

	"pcstore/internal/apperr"
	"pcstore/internal/models"
)

// RequireAuthenticated returns the caller or fails with Unauthenticated.
func RequireAuthenticated(ctx context.Context) (*models.User, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}
	return user, nil
}

// RequireStaff returns the caller if it carries the staff flag.
// Anonymous callers get Unauthenticated, non-staff callers get Forbidden.
func RequireStaff(ctx context.Context) (*models.User, error) {
	user, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, apperr.ErrForbidden
	}
	return user, nil
}

// RequireSelfOrStaff allows staff, or the user whose id is targetUserID.
func RequireSelfOrStaff(ctx context.Context, targetUserID uint) (*models.User, error) {
	user, err := RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if user.ID != targetUserID && !user.IsStaff {
		return nil, apperr.ErrForbidden
	}
	return user, nil
}

// ErrStaffOnlyField is returned when a non-staff caller sets a privileged flag.
var ErrStaffOnlyField = &apperr.Error{Kind: apperr.KindForbidden, Code: "STAFF_ONLY_FIELD", Message: "only staff may change verified or staff flags"}
