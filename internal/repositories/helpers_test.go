package repositories_test

import (
	"fmt"
	"testing"

	"pcstore/internal/database"
	"pcstore/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB returns a private in-memory SQLite database with the schema applied.
// A single connection means a running transaction holds the pool. Foreign keys
// are enforced as they are on postgres.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type seed struct {
	product  models.Product
	other    models.Product
	customer models.Customer
}

func seedCatalog(t *testing.T, db *gorm.DB) seed {
	t.Helper()
	collection := models.Collection{Title: "Parts"}
	require.NoError(t, db.Create(&collection).Error)

	s := seed{
		product: models.Product{Title: "A", Price: decimal.NewFromInt(10), Inventory: 100, CollectionID: collection.ID},
		other:   models.Product{Title: "B", Price: decimal.RequireFromString("10.1"), Inventory: 100, CollectionID: collection.ID},
	}
	require.NoError(t, db.Create(&s.product).Error)
	require.NoError(t, db.Create(&s.other).Error)

	user := models.User{Username: "buyer", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	s.customer = models.Customer{Phone: "555-0100", UserID: user.ID}
	require.NoError(t, db.Create(&s.customer).Error)
	return s
}

func newCart(t *testing.T, db *gorm.DB, productID uint, quantity int) (string, uint) {
	t.Helper()
	cart := models.Cart{ID: uuid.NewString()}
	require.NoError(t, db.Create(&cart).Error)
	item := models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
	require.NoError(t, db.Create(&item).Error)
	return cart.ID, item.ID
}
