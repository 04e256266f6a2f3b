package repositories_test

import (
	"context"
	"testing"

	"pcstore/internal/apperr"
	"pcstore/internal/models"
	"pcstore/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMCartRepository_ItemWrites(t *testing.T) {
	db := newTestDB(t)
	s := seedCatalog(t, db)
	repo := repositories.NewGORMCartRepository(db)
	ctx := context.Background()
	cartID, itemID := newCart(t, db, s.product.ID, 1)

	item, err := repo.UpsertItem(ctx, cartID, s.product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, itemID, item.ID)
	assert.Equal(t, 3, item.Quantity)

	item, err = repo.SetItemQuantity(ctx, itemID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, s.product.ID, item.Product.ID)

	require.NoError(t, repo.DeleteItem(ctx, itemID))
	_, err = repo.GetItem(ctx, itemID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestGORMCartRepository_UpsertIntoMissingCart(t *testing.T) {
	db := newTestDB(t)
	s := seedCatalog(t, db)
	repo := repositories.NewGORMCartRepository(db)

	_, err := repo.UpsertItem(context.Background(), uuid.NewString(), s.product.ID, 1)
	assert.ErrorIs(t, err, apperr.ErrCartNotFound)

	var n int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&n).Error)
	assert.Zero(t, n, "no orphan item may be written")
}

func TestGORMCartRepository_ItemWritesByMissingID(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCartRepository(db)
	ctx := context.Background()

	_, err := repo.SetItemQuantity(ctx, 404, 2)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(repo.DeleteItem(ctx, 404)))
}

func TestGORMCartRepository_UpsertOfMissingProduct(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := repositories.NewGORMCartRepository(db)
	cart := models.Cart{ID: uuid.NewString()}
	require.NoError(t, db.Create(&cart).Error)

	_, err := repo.UpsertItem(context.Background(), cart.ID, 9999, 1)
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PRODUCT_NOT_FOUND", appErr.Code)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}
