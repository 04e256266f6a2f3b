package services

import (
	"context"

	"pcstore/internal/auth"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CustomerService manages the shopping profiles attached to users.
type CustomerService struct {
	repo     repositories.CustomerRepository
	users    repositories.UserRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCustomerService builds a CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, users repositories.UserRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, users: users, validate: NewValidator(), logger: logger}
}

// ListCustomers returns every customer profile. Staff only.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx)
}

// GetCustomer loads one customer profile. Staff only.
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// CreateCustomer attaches a profile to in.UserID. Callers may only create
// their own profile unless they are staff.
func (s *CustomerService) CreateCustomer(ctx context.Context, in CreateCustomerInput) (*models.Customer, error) {
	if _, err := auth.RequireSelfOrStaff(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	customer := &models.Customer{
		Phone:     in.Phone,
		BirthDate: in.BirthDate,
		UserID:    in.UserID,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("customer created", zap.Uint("customer_id", customer.ID), zap.Uint("user_id", customer.UserID))
	return customer, nil
}

// UpdateCustomer patches a profile owned by the caller, or any profile for staff.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, in UpdateCustomerInput) (*models.Customer, error) {
	if _, err := auth.RequireAuthenticated(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := auth.RequireSelfOrStaff(ctx, customer.UserID); err != nil {
		return nil, err
	}

	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.BirthDate != nil {
		customer.BirthDate = in.BirthDate
	}
	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer profile. Staff only.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) error {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
