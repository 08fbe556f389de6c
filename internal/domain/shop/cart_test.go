package shop

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T, name string) *Product {
	t.Helper()
	p, err := NewProduct(name, decimal.NewFromInt(10))
	require.NoError(t, err)
	return p
}

func createTestCart(t *testing.T) *Cart {
	t.Helper()
	cart, err := NewCart(uuid.New(), uuid.New())
	require.NoError(t, err)
	return cart
}

// ==================== CartStatus ====================

func TestCartStatus(t *testing.T) {
	assert.True(t, CartStatusOpen.IsValid())
	assert.True(t, CartStatusClosed.IsValid())
	assert.False(t, CartStatus("10").IsValid())

	assert.True(t, CartStatusOpen.CanTransitionTo(CartStatusClosed))
	assert.False(t, CartStatusClosed.CanTransitionTo(CartStatusOpen))
	assert.False(t, CartStatusClosed.CanTransitionTo(CartStatusClosed))
	assert.Equal(t, "OPEN", CartStatusOpen.String())
}

// ==================== NewCart ====================

func TestNewCart(t *testing.T) {
	t.Run("creates open empty cart", func(t *testing.T) {
		userID, regionID := uuid.New(), uuid.New()
		cart, err := NewCart(userID, regionID)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, cart.ID)
		assert.Equal(t, userID, cart.UserID)
		assert.Equal(t, regionID, cart.RegionID)
		assert.Equal(t, CartStatusOpen, cart.Status)
		assert.Empty(t, cart.Items)
		assert.Equal(t, 1, cart.Version)
	})

	t.Run("requires user and region", func(t *testing.T) {
		_, err := NewCart(uuid.Nil, uuid.New())
		assert.Error(t, err)
		_, err = NewCart(uuid.New(), uuid.Nil)
		assert.Error(t, err)
	})
}

// ==================== AddItem / Close ====================

func TestCart_AddItem(t *testing.T) {
	cart := createTestCart(t)
	apple := createTestProduct(t, "apple")
	pear := createTestProduct(t, "pear")

	first, err := cart.AddItem(apple)
	require.NoError(t, err)
	_, err = cart.AddItem(pear)
	require.NoError(t, err)
	_, err = cart.AddItem(apple)
	require.NoError(t, err)

	assert.Equal(t, 3, cart.ItemCount())
	assert.Equal(t, cart.ID, first.CartID)
	assert.Equal(t, "apple", cart.Items[0].ProductName)
	assert.Equal(t, "pear", cart.Items[1].ProductName)
	assert.Equal(t, 2, cart.Items[2].Position)

	_, err = cart.AddItem(nil)
	assert.Error(t, err)
}

func TestCart_Close(t *testing.T) {
	cart := createTestCart(t)

	require.NoError(t, cart.Close())
	assert.Equal(t, CartStatusClosed, cart.Status)
	assert.NotNil(t, cart.ClosedAt)
	assert.False(t, cart.IsOpen())
	assert.Equal(t, 2, cart.Version)

	t.Run("closes exactly once", func(t *testing.T) {
		assert.Error(t, cart.Close())
	})

	t.Run("closed cart rejects new items", func(t *testing.T) {
		_, err := cart.AddItem(createTestProduct(t, "apple"))
		assert.True(t, errors.Is(err, ErrCartClosed))
	})
}

func TestCart_BelongsTo(t *testing.T) {
	cart := createTestCart(t)
	assert.True(t, cart.BelongsTo(cart.UserID))
	assert.False(t, cart.BelongsTo(uuid.New()))
}

// ==================== NewProduct ====================

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  shelf  ", decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.Equal(t, "shelf", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("19.99")))

	_, err = NewProduct("", decimal.Zero)
	assert.Error(t, err)

	_, err = NewProduct("shelf", decimal.NewFromInt(-1))
	assert.Error(t, err)
}
