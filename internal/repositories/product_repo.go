package repositories

import (
	"context"

	"pcstore/internal/models"

	"github.com/shopspring/decimal"
)

// ProductFilter narrows a product listing. Nil fields are not applied.
type ProductFilter struct {
	CollectionTitle *string
	PriceGt         *decimal.Decimal
	PriceLt         *decimal.Decimal
	InventoryGt     *int
	InventoryLt     *int
	Search          string
	OrderBy         string // title, price, inventory or last_update; "-" prefix for descending
	Offset          int
	Limit           int // 0 means no limit
}

// IsUnfiltered reports whether f selects the whole catalog in default order.
// Pagination does not count as filtering.
func (f ProductFilter) IsUnfiltered() bool {
	return f.CollectionTitle == nil && f.PriceGt == nil && f.PriceLt == nil &&
		f.InventoryGt == nil && f.InventoryLt == nil && f.Search == "" && f.OrderBy == ""
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context, withPromotions bool) ([]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByCollection(ctx context.Context, collectionID uint) (int64, error)
}

// CollectionRepository defines the interface for collection data access.
type CollectionRepository interface {
	GetAll(ctx context.Context) ([]models.Collection, error)
	GetByID(ctx context.Context, id uint) (*models.Collection, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id uint) error
}

// PromotionRepository defines the interface for promotion data access.
type PromotionRepository interface {
	GetAll(ctx context.Context) ([]models.Promotion, error)
	GetByID(ctx context.Context, id uint) (*models.Promotion, error)
	Create(ctx context.Context, promotion *models.Promotion) error
}
