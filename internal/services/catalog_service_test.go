package services_test

import (
	"context"
	"testing"
	"time"

	"pcstore/internal/apperr"
	"pcstore/internal/models"
	"pcstore/internal/repositories"
	"pcstore/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogService(f *fixture) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewGORMProductRepository(f.db),
		repositories.NewGORMCollectionRepository(f.db),
		repositories.NewGORMPromotionRepository(f.db),
		zap.NewNop(),
	)
}

func TestCatalogService_CreateProduct(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)

	in := services.ProductInput{
		Title:        "GPU",
		Description:  `{"summary":"fast"}`,
		Price:        "499.99",
		Inventory:    4,
		Slug:         "gpu",
		CollectionID: f.collection.ID,
		Images:       `["gpu.png"]`,
	}

	_, err := svc.CreateProduct(context.Background(), in)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
	_, err = svc.CreateProduct(asUser(&f.user), in)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	product, err := svc.CreateProduct(staffCtx(), in)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("499.99").Equal(product.Price))

	stored, err := svc.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "GPU", stored.Title)
	assert.Equal(t, `["gpu.png"]`, stored.Images)
}

func TestCatalogService_CreateProductValidation(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)
	base := services.ProductInput{Title: "X", Price: "1", CollectionID: f.collection.ID}

	cases := map[string]func(in *services.ProductInput){
		"bad price":          func(in *services.ProductInput) { in.Price = "cheap" },
		"negative price":     func(in *services.ProductInput) { in.Price = "-1" },
		"negative inventory": func(in *services.ProductInput) { in.Inventory = -1 },
		"invalid json":       func(in *services.ProductInput) { in.Description = "{oops" },
		"missing title":      func(in *services.ProductInput) { in.Title = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := base
			mutate(&in)
			_, err := svc.CreateProduct(staffCtx(), in)
			assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
		})
	}

	in := base
	in.CollectionID = 9999
	_, err := svc.CreateProduct(staffCtx(), in)
	assert.Equal(t, "COLLECTION_NOT_FOUND", apperr.From(err).Code)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)

	updated, err := svc.UpdateProduct(staffCtx(), f.productA.ID, services.ProductPatch{
		Price: strPtr("12.50"),
		Slug:  strPtr("a-renamed"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.50").Equal(updated.Price))
	assert.Equal(t, "A", updated.Title, "unset fields are kept")

	stored, err := svc.GetProduct(context.Background(), f.productA.ID)
	require.NoError(t, err)
	assert.Equal(t, "a-renamed", stored.Slug)

	_, err = svc.UpdateProduct(staffCtx(), 9999, services.ProductPatch{Title: strPtr("x")})
	assert.Equal(t, "PRODUCT_NOT_FOUND", apperr.From(err).Code)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)
	cartID := f.cart(t, map[uint]int{f.productB.ID: 1})

	require.NoError(t, svc.DeleteProduct(staffCtx(), f.productB.ID))
	var lines int64
	require.NoError(t, f.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&lines).Error)
	assert.Zero(t, lines, "cart lines of a deleted product go with it")

	order := models.Order{PlacedAt: time.Now(), CustomerID: f.customer.ID}
	require.NoError(t, f.db.Create(&order).Error)
	require.NoError(t, f.db.Create(&models.OrderItem{
		OrderID: order.ID, ProductID: f.productA.ID, Quantity: 1, UnitPrice: f.productA.Price,
	}).Error)

	err := svc.DeleteProduct(staffCtx(), f.productA.ID)
	assert.Equal(t, "PRODUCT_PROTECTED", apperr.From(err).Code)
}

func TestCatalogService_Collections(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)

	_, err := svc.CreateCollection(asUser(&f.user), services.CollectionInput{Title: "Nope"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	featured := f.productA.ID
	c, err := svc.CreateCollection(staffCtx(), services.CollectionInput{Title: "Deals", FeaturedProductID: &featured})
	require.NoError(t, err)
	require.NotNil(t, c.FeaturedProductID)

	c, err = svc.UpdateCollection(staffCtx(), c.ID, services.CollectionInput{Title: "Hot Deals"})
	require.NoError(t, err)
	assert.Equal(t, "Hot Deals", c.Title)

	all, err := svc.ListCollections(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	err = svc.DeleteCollection(staffCtx(), f.collection.ID)
	assert.Equal(t, "COLLECTION_PROTECTED", apperr.From(err).Code)

	require.NoError(t, svc.DeleteCollection(staffCtx(), c.ID))
	_, err = svc.GetCollection(context.Background(), c.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCatalogService_Promotions(t *testing.T) {
	f := newFixture(t)
	svc := newCatalogService(f)

	p, err := svc.CreatePromotion(staffCtx(), services.PromotionInput{Description: "Spring", Discount: 0.2})
	require.NoError(t, err)

	got, err := svc.GetPromotion(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring", got.Description)

	all, err := svc.ListPromotions(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
