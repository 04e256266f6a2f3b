package services

import (
	"context"
	"encoding/json"
	"time"

	"pcstore/internal/cache"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"go.uber.org/zap"
)

// FullListingKey is the single cache entry holding the unfiltered catalog.
const FullListingKey = "cached-products"

// DefaultListingTTL applies when no TTL is configured.
const DefaultListingTTL = 5 * time.Hour

// ListingService serves filtered product views and the cached full listing.
// Writes never invalidate the cache; the entry lives until its TTL.
type ListingService struct {
	products repositories.ProductRepository
	cache    cache.Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewListingService wraps products with a read-through cache. A non-positive
// ttl falls back to DefaultListingTTL.
func NewListingService(products repositories.ProductRepository, c cache.Cache, ttl time.Duration, logger *zap.Logger) *ListingService {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &ListingService{products: products, cache: c, ttl: ttl, logger: logger}
}

// ListProducts returns one page of products matching filter and the total match count.
func (s *ListingService) ListProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.products.List(ctx, filter)
}

// AllProducts returns the whole catalog without promotions.
func (s *ListingService) AllProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.GetAll(ctx, false)
}

// FullProducts serves an unfiltered request from the cache and anything else
// from the store. Pagination is applied on top of the cached listing.
func (s *ListingService) FullProducts(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	if !filter.IsUnfiltered() {
		return s.products.List(ctx, filter)
	}
	all, err := s.fullListing(ctx)
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

func (s *ListingService) fullListing(ctx context.Context) ([]models.Product, error) {
	if raw, ok, err := s.cache.Get(ctx, FullListingKey); err != nil {
		s.logger.Warn("listing cache read failed", zap.Error(err))
	} else if ok {
		var products []models.Product
		if err := json.Unmarshal(raw, &products); err == nil {
			return products, nil
		}
		s.logger.Warn("discarding undecodable listing cache entry")
	}

	products, err := s.products.GetAll(ctx, true)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(products)
	if err != nil {
		s.logger.Warn("failed to encode listing for cache", zap.Error(err))
		return products, nil
	}
	if err := s.cache.Set(ctx, FullListingKey, raw, s.ttl); err != nil {
		s.logger.Warn("listing cache write failed", zap.Error(err))
	}
	return products, nil
}

func paginate(products []models.Product, offset, limit int) []models.Product {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(products) {
		return []models.Product{}
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}

// ProductsCount returns the size of the catalog.
func (s *ListingService) ProductsCount(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

// CollectionProductsCount returns how many products share collectionID.
func (s *ListingService) CollectionProductsCount(ctx context.Context, collectionID uint) (int64, error) {
	return s.products.CountByCollection(ctx, collectionID)
}
