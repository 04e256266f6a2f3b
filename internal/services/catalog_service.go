package services

import (
	"context"

	"pcstore/internal/apperr"
	"pcstore/internal/auth"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CatalogService handles products, collections and promotions. Reads are
// public, writes require staff.
type CatalogService struct {
	products    repositories.ProductRepository
	collections repositories.CollectionRepository
	promotions  repositories.PromotionRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, collections repositories.CollectionRepository,
	promotions repositories.PromotionRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		products:    products,
		collections: collections,
		promotions:  promotions,
		validate:    NewValidator(),
		logger:      logger,
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, apperr.InvalidInput("price %q is not a decimal number", raw)
	}
	if price.IsNegative() {
		return decimal.Zero, apperr.InvalidInput("price must not be negative")
	}
	return price, nil
}

// GetProduct retrieves a single product by its ID.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// CreateProduct creates a new product in an existing collection.
func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	price, err := parsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	if _, err := s.collections.GetByID(ctx, in.CollectionID); err != nil {
		return nil, err
	}

	product := &models.Product{
		Title:        in.Title,
		Description:  in.Description,
		Price:        price,
		Inventory:    in.Inventory,
		Slug:         in.Slug,
		CollectionID: in.CollectionID,
		Images:       in.Images,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.Uint("product_id", product.ID))
	return product, nil
}

// UpdateProduct applies a patch to an existing product.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in ProductPatch) (*models.Product, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		product.Title = *in.Title
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		price, err := parsePrice(*in.Price)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}
	if in.Inventory != nil {
		product.Inventory = *in.Inventory
	}
	if in.Slug != nil {
		product.Slug = *in.Slug
	}
	if in.CollectionID != nil {
		if _, err := s.collections.GetByID(ctx, *in.CollectionID); err != nil {
			return nil, err
		}
		product.CollectionID = *in.CollectionID
		product.Collection = nil
	}
	if in.Images != nil {
		product.Images = *in.Images
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.Uint("product_id", id))
	return nil
}

// ListCollections returns all collections.
func (s *CatalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	return s.collections.GetAll(ctx)
}

// GetCollection loads one collection by id.
func (s *CatalogService) GetCollection(ctx context.Context, id uint) (*models.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

// CreateCollection validates and stores a new collection.
func (s *CatalogService) CreateCollection(ctx context.Context, in CollectionInput) (*models.Collection, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	if in.FeaturedProductID != nil {
		if _, err := s.products.GetByID(ctx, *in.FeaturedProductID); err != nil {
			return nil, err
		}
	}
	collection := &models.Collection{Title: in.Title, FeaturedProductID: in.FeaturedProductID}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// UpdateCollection replaces the title and featured product of a collection.
func (s *CatalogService) UpdateCollection(ctx context.Context, id uint, in CollectionInput) (*models.Collection, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	collection, err := s.collections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FeaturedProductID != nil {
		if _, err := s.products.GetByID(ctx, *in.FeaturedProductID); err != nil {
			return nil, err
		}
		collection.FeaturedProductID = in.FeaturedProductID
	}
	collection.Title = in.Title
	if err := s.collections.Update(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// DeleteCollection removes a collection.
func (s *CatalogService) DeleteCollection(ctx context.Context, id uint) error {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return err
	}
	return s.collections.Delete(ctx, id)
}

func (s *CatalogService) ListPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.promotions.GetAll(ctx)
}

func (s *CatalogService) GetPromotion(ctx context.Context, id uint) (*models.Promotion, error) {
	return s.promotions.GetByID(ctx, id)
}

// CreatePromotion validates and stores a new promotion.
func (s *CatalogService) CreatePromotion(ctx context.Context, in PromotionInput) (*models.Promotion, error) {
	if _, err := auth.RequireStaff(ctx); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, in); err != nil {
		return nil, err
	}
	promotion := &models.Promotion{Description: in.Description, Discount: in.Discount}
	if err := s.promotions.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}
