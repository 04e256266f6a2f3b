package database

import (
	"fmt"
	"testing"
	"time"

	"pcstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func memoryDSN(t *testing.T) string {
	return fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", zap.NewNop())
	assert.Error(t, err)
}

func TestOpenAndSeed(t *testing.T) {
	db, err := Open("sqlite", memoryDSN(t), zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db), "seeding twice is a no-op")

	var products []models.Product
	require.NoError(t, db.Preload("Promotions").Order("id").Find(&products).Error)
	require.Len(t, products, 3)
	assert.Equal(t, "Laptop", products[0].Title)
	assert.Len(t, products[0].Promotions, 1)

	var laptops models.Collection
	require.NoError(t, db.First(&laptops, "title = ?", "Laptops").Error)
	require.NotNil(t, laptops.FeaturedProductID)
	assert.Equal(t, products[0].ID, *laptops.FeaturedProductID)
}

func TestOpen_LogsQueryErrorsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := Open("sqlite", memoryDSN(t), zap.New(core))
	require.NoError(t, err)

	var n int
	require.Error(t, db.Raw("SELECT count(*) FROM missing_table").Scan(&n).Error)

	entries := logs.FilterMessageSnippet("missing_table").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "gorm", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestOpen_RecordNotFoundIsNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	db, err := Open("sqlite", memoryDSN(t), zap.New(core))
	require.NoError(t, err)

	var p models.Product
	require.Error(t, db.First(&p, 12345).Error)
	assert.Zero(t, logs.FilterLoggerName("gorm").Len())
}
