package repositories

import (
	"context"
	"errors"
	"fmt"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
)

// upsertAttempts bounds the retry when two inserts race on (cart_id, product_id).
const upsertAttempts = 2

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

// Create persists an empty cart. The caller assigns the ID.
func (r *GORMCartRepository) Create(ctx context.Context, cart *models.Cart) error {
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// GetByID retrieves a cart without its items.
func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.WithContext(ctx).First(&cart, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart %s: %w", id, err)
	}
	return &cart, nil
}

// Delete removes a cart and its items in one transaction.
func (r *GORMCartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete items of cart %s: %w", id, err)
		}
		res := tx.Delete(&models.Cart{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrCartNotFound
		}
		return nil
	})
}

// ListItems returns the items of a cart with their current product rows.
func (r *GORMCartRepository) ListItems(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").Where("cart_id = ?", cartID).Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items of cart %s: %w", cartID, err)
	}
	return items, nil
}

// ListAllItems returns every cart item in the store.
func (r *GORMCartRepository) ListAllItems(ctx context.Context) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").Order("id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

// GetItem retrieves a cart item with its product.
func (r *GORMCartRepository) GetItem(ctx context.Context, id uint) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("CART_ITEM", "cart item with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get cart item %d: %w", id, err)
	}
	return &item, nil
}

// UpsertItem increments the quantity of the (cart, product) line, inserting it
// when absent. The increment is done in SQL so concurrent upserts add up.
func (r *GORMCartRepository) UpsertItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	var err error
	for attempt := 0; attempt < upsertAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := lockCartShared(tx, cartID); err != nil {
				return err
			}
			res := tx.Model(&models.CartItem{}).
				Where("cart_id = ? AND product_id = ?", cartID, productID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to increment cart item: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				item = models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
				return tx.Create(&item).Error
			}
			return tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
	}
	switch {
	case err == nil:
		return &item, nil
	case errors.Is(err, apperr.ErrCartNotFound):
		return nil, err
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		// The cart row is share-locked, so only the product can have gone.
		return nil, apperr.NotFound("PRODUCT", "product with ID %d not found", productID).WithCause(err)
	default:
		return nil, fmt.Errorf("failed to upsert item into cart %s: %w", cartID, err)
	}
}

// SetItemQuantity overwrites the quantity of an existing item.
func (r *GORMCartRepository) SetItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := cartOfItem(tx, id)
		if err != nil {
			return err
		}
		if err := lockCartShared(tx, cartID); err != nil {
			return err
		}
		res := tx.Model(&models.CartItem{}).Where("id = ?", id).UpdateColumn("quantity", quantity)
		if res.Error != nil {
			return fmt.Errorf("failed to update cart item %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("CART_ITEM", "cart item with ID %d not found for update", id)
		}
		return tx.Preload("Product").First(&item, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes one cart item.
func (r *GORMCartRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartID, err := cartOfItem(tx, id)
		if err != nil {
			return err
		}
		if err := lockCartShared(tx, cartID); err != nil {
			return err
		}
		res := tx.Delete(&models.CartItem{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete cart item %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("CART_ITEM", "cart item with ID %d not found for deletion", id)
		}
		return nil
	})
}
