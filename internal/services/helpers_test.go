package services_test

import (
	"context"
	"fmt"
	"testing"

	"pcstore/internal/auth"
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
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
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

type fixture struct {
	db         *gorm.DB
	collection models.Collection
	productA   models.Product
	productB   models.Product
	user       models.User
	customer   models.Customer
}

// newFixture seeds product A at 10, product B at 5 and customer 7.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	f := &fixture{db: db}

	f.collection = models.Collection{Title: "Parts"}
	require.NoError(t, db.Create(&f.collection).Error)

	f.productA = models.Product{Title: "A", Price: decimal.NewFromInt(10), Inventory: 100, CollectionID: f.collection.ID}
	f.productB = models.Product{Title: "B", Price: decimal.NewFromInt(5), Inventory: 100, CollectionID: f.collection.ID}
	require.NoError(t, db.Create(&f.productA).Error)
	require.NoError(t, db.Create(&f.productB).Error)

	f.user = models.User{Username: "buyer", Email: "buyer@example.com", Password: "x"}
	require.NoError(t, db.Create(&f.user).Error)
	f.customer = models.Customer{ID: 7, Phone: "555-0100", UserID: f.user.ID}
	require.NoError(t, db.Create(&f.customer).Error)
	return f
}

// cart creates a cart holding the given product quantities.
func (f *fixture) cart(t *testing.T, lines map[uint]int) string {
	t.Helper()
	cart := models.Cart{ID: uuid.NewString()}
	require.NoError(t, f.db.Create(&cart).Error)
	for productID, qty := range lines {
		require.NoError(t, f.db.Create(&models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: qty}).Error)
	}
	return cart.ID
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func asUser(user *models.User) context.Context {
	return auth.WithUser(context.Background(), user)
}

func staffCtx() context.Context {
	return asUser(&models.User{ID: 1000, Username: "admin", IsStaff: true})
}
