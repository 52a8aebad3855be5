package products

import (
	"context"
	"testing"

	"github.com/ilmsadmin/zbase-sub005/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductsTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Partner{}, &models.Product{}))
	return &Service{DB: db}
}

func TestCreateProduct_Defaults(t *testing.T) {
	svc := setupProductsTest(t)

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "Laptop X1", SKU: "sku-x1", Price: 1500})
	require.NoError(t, err)
	assert.Equal(t, "SKU-X1", p.SKU)
	assert.Equal(t, 12, p.WarrantyMonths)
}

func TestCreateProduct_Validation(t *testing.T) {
	svc := setupProductsTest(t)

	_, err := svc.Create(context.Background(), CreateProductInput{SKU: "S"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Create(context.Background(), CreateProductInput{Name: "X", SKU: "S", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	missing := uint(9)
	_, err = svc.Create(context.Background(), CreateProductInput{Name: "X", SKU: "S", PartnerID: &missing})
	assert.ErrorIs(t, err, ErrPartnerMissing)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	svc := setupProductsTest(t)

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "A", SKU: "DUP-1"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateProductInput{Name: "B", SKU: "dup-1"})
	assert.ErrorIs(t, err, ErrSKUTaken)
}

func TestListProducts_Search(t *testing.T) {
	svc := setupProductsTest(t)

	_, err := svc.Create(context.Background(), CreateProductInput{Name: "Laptop X1", SKU: "LP-1"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateProductInput{Name: "Phone Z", SKU: "PH-1"})
	require.NoError(t, err)

	ps, err := svc.List(context.Background(), "laptop")
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "LP-1", ps[0].SKU)
}

func TestUpdateProduct(t *testing.T) {
	svc := setupProductsTest(t)

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "A", SKU: "A-1", Price: 10})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), p.ID, map[string]interface{}{"price": 20.0, "bogus": "x"})
	require.NoError(t, err)
	assert.Equal(t, 20.0, got.Price)

	_, err = svc.Update(context.Background(), p.ID, map[string]interface{}{"bogus": "x"})
	assert.ErrorIs(t, err, ErrNoUpdateFields)

	_, err = svc.Update(context.Background(), 99, map[string]interface{}{"price": 5.0})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveProduct(t *testing.T) {
	svc := setupProductsTest(t)

	p, err := svc.Create(context.Background(), CreateProductInput{Name: "A", SKU: "A-1"})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(context.Background(), p.ID))

	_, err = svc.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
