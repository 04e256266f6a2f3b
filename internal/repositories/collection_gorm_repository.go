package repositories

import (
	"context"
	"errors"
	"fmt"

	"pcstore/internal/apperr"
	"pcstore/internal/models"

	"gorm.io/gorm"
)

// GORMCollectionRepository is a GORM implementation of CollectionRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{db: db}
}

func (r *GORMCollectionRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if err := r.db.WithContext(ctx).Order("title").Order("id").Find(&collections).Error; err != nil {
		return nil, fmt.Errorf("failed to get all collections: %w", err)
	}
	return collections, nil
}

func (r *GORMCollectionRepository) GetByID(ctx context.Context, id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.WithContext(ctx).First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("COLLECTION", "collection with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get collection by ID %d: %w", id, err)
	}
	return &collection, nil
}

func (r *GORMCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (r *GORMCollectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	res := r.db.WithContext(ctx).Save(collection)
	if res.Error != nil {
		return fmt.Errorf("failed to update collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("COLLECTION", "collection with ID %d not found for update", collection.ID)
	}
	return nil
}

// Delete removes an empty collection. Collections still holding products are protected.
func (r *GORMCollectionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var products int64
		if err := tx.Model(&models.Product{}).Where("collection_id = ?", id).Count(&products).Error; err != nil {
			return fmt.Errorf("failed to check products of collection %d: %w", id, err)
		}
		if products > 0 {
			return apperr.Conflict("COLLECTION_PROTECTED", "collection %d still holds %d products", id, products)
		}
		res := tx.Delete(&models.Collection{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete collection: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("COLLECTION", "collection with ID %d not found for deletion", id)
		}
		return nil
	})
}

// GORMPromotionRepository is a GORM implementation of PromotionRepository.
type GORMPromotionRepository struct {
	db *gorm.DB
}

func NewGORMPromotionRepository(db *gorm.DB) *GORMPromotionRepository {
	return &GORMPromotionRepository{db: db}
}

func (r *GORMPromotionRepository) GetAll(ctx context.Context) ([]models.Promotion, error) {
	var promotions []models.Promotion
	if err := r.db.WithContext(ctx).Order("id").Find(&promotions).Error; err != nil {
		return nil, fmt.Errorf("failed to get all promotions: %w", err)
	}
	return promotions, nil
}

func (r *GORMPromotionRepository) GetByID(ctx context.Context, id uint) (*models.Promotion, error) {
	var promotion models.Promotion
	if err := r.db.WithContext(ctx).First(&promotion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("PROMOTION", "promotion with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get promotion by ID %d: %w", id, err)
	}
	return &promotion, nil
}

func (r *GORMPromotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	if err := r.db.WithContext(ctx).Create(promotion).Error; err != nil {
		return fmt.Errorf("failed to create promotion: %w", err)
	}
	return nil
}
