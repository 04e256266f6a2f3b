package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
)

// numericPrice compares price numerically; the column holds decimal text.
const numericPrice = "CAST(price AS DECIMAL)"

var productOrderColumns = map[string]string{
	"title":       "title",
	"price":       numericPrice,
	"inventory":   "inventory",
	"last_update": "last_update",
	"lastUpdate":  "last_update",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by title.
func (r *GORMProductRepository) GetAll(ctx context.Context, withPromotions bool) ([]models.Product, error) {
	var products []models.Product
	q := r.db.WithContext(ctx).Order("title").Order("id")
	if withPromotions {
		q = q.Preload("Promotions")
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// List applies filter and returns one page of products with the total match count.
func (r *GORMProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.CollectionTitle != nil {
		q = q.Where("collection_id IN (?)",
			r.db.Model(&models.Collection{}).Select("id").Where("title = ?", *filter.CollectionTitle))
	}
	if filter.PriceGt != nil {
		q = q.Where(numericPrice+" > CAST(? AS DECIMAL)", filter.PriceGt.String())
	}
	if filter.PriceLt != nil {
		q = q.Where(numericPrice+" < CAST(? AS DECIMAL)", filter.PriceLt.String())
	}
	if filter.InventoryGt != nil {
		q = q.Where("inventory > ?", *filter.InventoryGt)
	}
	if filter.InventoryLt != nil {
		q = q.Where("inventory < ?", *filter.InventoryLt)
	}
	if filter.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy, err := productOrder(filter.OrderBy)
	if err != nil {
		return nil, 0, err
	}
	q = q.Order(orderBy).Order("id")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var products []models.Product
	if err := q.Preload("Promotions").Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	return products, total, nil
}

func productOrder(orderBy string) (string, error) {
	if orderBy == "" {
		return "title", nil
	}
	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = orderBy[1:]
	}
	column, ok := productOrderColumns[field]
	if !ok {
		return "", apperr.InvalidInput("cannot order products by %q", orderBy)
	}
	return column + " " + direction, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Preload("Promotions").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("PRODUCT", "product with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product) error {
	res := r.db.WithContext(ctx).Omit("Promotions", "Collection").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("PRODUCT", "product with ID %d not found for update", product.ID)
	}
	return nil
}

// Delete removes a product and the cart lines holding it. Products referenced
// by order items are protected.
func (r *GORMProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ordered int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
			return fmt.Errorf("failed to check order items for product %d: %w", id, err)
		}
		if ordered > 0 {
			return apperr.Conflict("PRODUCT_PROTECTED", "product %d is referenced by %d order items", id, ordered)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items for product %d: %w", id, err)
		}
		if err := tx.Model(&models.Product{ID: id}).Association("Promotions").Clear(); err != nil {
			return fmt.Errorf("failed to detach promotions from product %d: %w", id, err)
		}
		res := tx.Delete(&models.Product{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("PRODUCT", "product with ID %d not found for deletion", id)
		}
		return nil
	})
}

// Count returns the number of products in the catalog.
func (r *GORMProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return n, nil
}

// CountByCollection returns the number of products in one collection.
func (r *GORMProductRepository) CountByCollection(ctx context.Context, collectionID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Where("collection_id = ?", collectionID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count products of collection %d: %w", collectionID, err)
	}
	return n, nil
}
