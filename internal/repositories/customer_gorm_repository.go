package repositories

import (
	"context"
	"errors"
	"fmt"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{db: db}
}

func (r *GORMCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(customer).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("CUSTOMER_EXISTS", "user %d already has a customer profile", customer.UserID)
		}
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

func (r *GORMCustomerRepository) GetAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Order("id").Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

func (r *GORMCustomerRepository) GetByID(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("CUSTOMER", "customer with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get customer by ID %d: %w", id, err)
	}
	return &customer, nil
}

func (r *GORMCustomerRepository) GetByUserID(ctx context.Context, userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("CUSTOMER", "no customer for user %d", userID)
		}
		return nil, fmt.Errorf("failed to get customer by user ID %d: %w", userID, err)
	}
	return &customer, nil
}

func (r *GORMCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	res := r.db.WithContext(ctx).Omit("User").Save(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("CUSTOMER", "customer with ID %d not found for update", customer.ID)
	}
	return nil
}

// Delete removes a customer. Customers with orders are protected.
func (r *GORMCustomerRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return fmt.Errorf("failed to check orders of customer %d: %w", id, err)
		}
		if orders > 0 {
			return apperr.Conflict("CUSTOMER_PROTECTED", "customer %d has %d orders", id, orders)
		}
		res := tx.Delete(&models.Customer{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete customer: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("CUSTOMER", "customer with ID %d not found for deletion", id)
		}
		return nil
	})
}
