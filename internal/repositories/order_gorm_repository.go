package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// PlaceFromCart runs the checkout transaction. Any error rolls back every write.
func (r *GORMOrderRepository) PlaceFromCart(ctx context.Context, cartID string, customerID uint, placedAt time.Time) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := lockRow(tx, "UPDATE").First(&cart, "id = ?", cartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrCartNotFound
			}
			return fmt.Errorf("failed to lock cart %s: %w", cartID, err)
		}

		var count int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count items of cart %s: %w", cartID, err)
		}
		if count == 0 {
			return apperr.ErrEmptyCart
		}

		var customers int64
		if err := tx.Model(&models.Customer{}).Where("id = ?", customerID).Count(&customers).Error; err != nil {
			return fmt.Errorf("failed to check customer %d: %w", customerID, err)
		}
		if customers == 0 {
			return apperr.NotFound("CUSTOMER", "customer with ID %d not found", customerID)
		}

		var cartItems []models.CartItem
		if err := tx.Preload("Product").Where("cart_id = ?", cartID).Order("id").Find(&cartItems).Error; err != nil {
			return fmt.Errorf("failed to load items of cart %s: %w", cartID, err)
		}

		order = models.Order{
			PlacedAt:      placedAt,
			PaymentStatus: models.PaymentPending,
			CustomerID:    customerID,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			if item.Product == nil {
				return apperr.NotFound("PRODUCT", "product with ID %d not found", item.ProductID)
			}
			res := tx.Model(&models.Product{}).
				Where("id = ? AND inventory >= ?", item.ProductID, item.Quantity).
				UpdateColumn("inventory", gorm.Expr("inventory - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to reserve inventory for product %d: %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperr.ErrInsufficientInventory.WithCause(
					fmt.Errorf("product %d has fewer than %d units", item.ProductID, item.Quantity))
			}
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
			})
		}
		if err := tx.Omit(clause.Associations).Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of cart %s: %w", cartID, err)
		}
		res := tx.Delete(&models.Cart{}, "id = ?", cartID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart %s: %w", cartID, res.Error)
		}
		if res.RowsAffected != 1 {
			return apperr.ErrCartNotFound
		}

		return tx.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
			Preload("Items.Product").
			First(&order, order.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Order("id").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByID retrieves an order by its ID with its items.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ORDER", "order with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order by ID %d: %w", id, err)
	}
	return &order, nil
}

// UpdateStatus applies a compare-and-set on payment_status, so of two
// concurrent transitions out of the same state only one succeeds.
func (r *GORMOrderRepository) UpdateStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (*models.Order, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND payment_status = ?", id, from).
		UpdateColumn("payment_status", to)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update status of order %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, apperr.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}

// Delete removes an order and its items.
func (r *GORMOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of order %d: %w", id, err)
		}
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete order: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("ORDER", "order with ID %d not found for deletion", id)
		}
		return nil
	})
}

// ListItems returns every order line ordered by id.
func (r *GORMOrderRepository) ListItems(ctx context.Context) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

// GetItem loads one order line by id.
func (r *GORMOrderRepository) GetItem(ctx context.Context, id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("ORDER_ITEM", "order item with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get order item %d: %w", id, err)
	}
	return &item, nil
}
