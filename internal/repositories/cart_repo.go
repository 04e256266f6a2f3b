package repositories

import (
	"context"

	"pcstore/internal/models"
)

// CartRepository defines the interface for cart data access.
type CartRepository interface {
	Create(ctx context.Context, cart *models.Cart) error
	GetByID(ctx context.Context, id string) (*models.Cart, error)
	Delete(ctx context.Context, id string) error
	ListItems(ctx context.Context, cartID string) ([]models.CartItem, error)
	ListAllItems(ctx context.Context) ([]models.CartItem, error)
	GetItem(ctx context.Context, id uint) (*models.CartItem, error)
	UpsertItem(ctx context.Context, cartID string, productID uint, quantity int) (*models.CartItem, error)
	SetItemQuantity(ctx context.Context, id uint, quantity int) (*models.CartItem, error)
	DeleteItem(ctx context.Context, id uint) error
}
