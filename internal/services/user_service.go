package services

import (
	"context"

	"pcstore/internal/auth"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UserService handles account reads and profile changes.
type UserService struct {
	repo     repositories.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
}

func NewUserService(repo repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, validate: NewValidator(), logger: logger}
}

// Me returns the authenticated caller as currently stored.
func (s *UserService) Me(ctx context.Context) (*models.User, error) {
	caller, err := auth.RequireAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, caller.ID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateUser patches a user. Users may edit themselves; the verified and
// staff flags are reserved to staff.
func (s *UserService) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*models.User, error) {
	caller, err := auth.RequireSelfOrStaff(ctx, id)
	if err != nil {
		return nil, err
	}
	if (in.Verified != nil || in.IsStaff != nil) && !caller.IsStaff {
		return nil, auth.ErrStaffOnlyField
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hashed, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Verified != nil {
		user.Verified = *in.Verified
	}
	if in.IsStaff != nil {
		user.IsStaff = *in.IsStaff
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user updated", zap.Uint("user_id", user.ID), zap.Uint("by", caller.ID))
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	caller, err := auth.RequireStaff(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Uint("user_id", id), zap.Uint("by", caller.ID))
	return nil
}
