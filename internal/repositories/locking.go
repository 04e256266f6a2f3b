package repositories

import (
	"errors"
	"fmt"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockRow adds SELECT ... FOR <strength> on dialects that support it.
// SQLite serializes writers on its own and rejects the clause.
func lockRow(tx *gorm.DB, strength string) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: strength})
}

// lockCartShared takes a shared lock on the cart row. Item writers hold it so
// they wait for a placement holding FOR UPDATE and fail once it has deleted
// the cart.
func lockCartShared(tx *gorm.DB, cartID string) error {
	var cart models.Cart
	if err := lockRow(tx, "SHARE").Select("id").First(&cart, "id = ?", cartID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrCartNotFound
		}
		return fmt.Errorf("failed to lock cart %s: %w", cartID, err)
	}
	return nil
}

// cartOfItem resolves the cart an item belongs to.
func cartOfItem(tx *gorm.DB, itemID uint) (string, error) {
	var item models.CartItem
	if err := tx.Select("id", "cart_id").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("CART_ITEM", "cart item with ID %d not found", itemID)
		}
		return "", fmt.Errorf("failed to get cart item %d: %w", itemID, err)
	}
	return item.CartID, nil
}
