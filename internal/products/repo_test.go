package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tillpointhq/tillpoint-backend/pkg/db/models"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  category TEXT,
  unit_price NUMERIC NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:        uuid.New(),
		Name:      name,
		SKU:       sku,
		UnitPrice: decimal.RequireFromString("9.99"),
		IsActive:  active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestProductRepoCreateAndFind(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := &models.Product{
		Name:      "House Blend",
		SKU:       "HB-1",
		Category:  "coffee",
		UnitPrice: decimal.RequireFromString("4.50"),
		IsActive:  true,
	}
	require.NoError(t, repo.Create(ctx, product))
	assert.NotEqual(t, uuid.Nil, product.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "HB-1", found.SKU)
	assert.True(t, found.UnitPrice.Equal(decimal.RequireFromString("4.50")))
}

func TestProductRepoDuplicateSKU(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "First", "DUP-1", true)

	err := repo.Create(ctx, &models.Product{
		ID:        uuid.New(),
		Name:      "Second",
		SKU:       "DUP-1",
		UnitPrice: decimal.RequireFromString("1"),
		IsActive:  true,
	})
	require.Error(t, err)
}

func TestProductRepoListFiltersInactive(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Active", "A-1", true)
	seedProduct(t, db, "Retired", "R-1", false)

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.Equal(t, "A-1", active[0].SKU)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
