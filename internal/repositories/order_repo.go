package repositories

import (
	"context"
	"time"

	"pcstore/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// PlaceFromCart materializes the cart into a pending order for customerID
	// and deletes the cart, all in one transaction.
	PlaceFromCart(ctx context.Context, cartID string, customerID uint, placedAt time.Time) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByID(ctx context.Context, id uint) (*models.Order, error)
	// UpdateStatus moves the order to status `to` only if it is currently `from`.
	UpdateStatus(ctx context.Context, id uint, from, to models.PaymentStatus) (*models.Order, error)
	Delete(ctx context.Context, id uint) error
	ListItems(ctx context.Context) ([]models.OrderItem, error)
	GetItem(ctx context.Context, id uint) (*models.OrderItem, error)
}
