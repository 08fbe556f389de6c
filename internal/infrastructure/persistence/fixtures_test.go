package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/rationshop/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupShopDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLiteDB(t)
}

func seedRegion(t *testing.T, db *gorm.DB, name string, limit int, closed, unlimited bool) *rationing.Region {
	t.Helper()
	region, err := rationing.NewRegion(name, limit, closed, unlimited)
	require.NoError(t, err)
	require.NoError(t, NewGormRegionRepository(db).Save(context.Background(), region))
	return region
}

func seedGlobalLimit(t *testing.T, db *gorm.DB, limit int) {
	t.Helper()
	global, err := rationing.NewGlobalLimit(limit)
	require.NoError(t, err)
	require.NoError(t, NewGormGlobalLimitRepository(db).Replace(context.Background(), global))
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) *shop.Product {
	t.Helper()
	product, err := shop.NewProduct(name, decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

// seedCart stores an open cart holding one unit of each product, in order
func seedCart(t *testing.T, db *gorm.DB, userID uuid.UUID, region *rationing.Region, products ...*shop.Product) *shop.Cart {
	t.Helper()
	cart, err := shop.NewCart(userID, region.ID)
	require.NoError(t, err)
	for _, p := range products {
		_, err := cart.AddItem(p)
		require.NoError(t, err)
	}
	require.NoError(t, NewGormCartRepository(db).Save(context.Background(), cart))
	return cart
}

// seedUnits stores an open cart with n units of a single product
func seedUnits(t *testing.T, db *gorm.DB, userID uuid.UUID, region *rationing.Region, product *shop.Product, n int) *shop.Cart {
	t.Helper()
	products := make([]*shop.Product, n)
	for i := range products {
		products[i] = product
	}
	return seedCart(t, db, userID, region, products...)
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}
