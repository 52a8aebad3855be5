package inventory

import (
	"context"
	"testing"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupInventoryTest(t *testing.T) (*Service, models.Product) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Partner{}, &models.Product{}, &models.StockLevel{}))
	p := models.Product{Name: "Laptop X1", SKU: "LP-1", Price: 1500}
	require.NoError(t, db.Create(&p).Error)
	return &Service{DB: db}, p
}

func TestAdjustStock_CreatesRow(t *testing.T) {
	svc, p := setupInventoryTest(t)

	level, err := svc.AdjustStock(context.Background(), p.ID, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, level.Quantity)

	level, err = svc.AdjustStock(context.Background(), p.ID, -4, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, level.Quantity)
}

func TestAdjustStock_Guards(t *testing.T) {
	svc, p := setupInventoryTest(t)

	_, err := svc.AdjustStock(context.Background(), 999, 1, nil)
	assert.ErrorIs(t, err, ErrProductMissing)

	_, err = svc.AdjustStock(context.Background(), p.ID, -1, nil)
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestViewStock_LowStockFlag(t *testing.T) {
	svc, p := setupInventoryTest(t)

	reorder := 5
	_, err := svc.AdjustStock(context.Background(), p.ID, 3, &reorder)
	require.NoError(t, err)

	views, err := svc.ViewStock(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].LowStock)
	require.NotNil(t, views[0].Product)
	assert.Equal(t, "LP-1", views[0].Product.SKU)
}
