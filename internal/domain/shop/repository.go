package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
)

// ProductRepository defines persistence for sellable items
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs finds products by IDs; missing IDs are omitted from the result
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// FindAll lists products, filtered by name search
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartRepository defines persistence for carts
type CartRepository interface {
	// FindByIDForUser finds a cart owned by the user, with items
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Cart, error)
	// FindOpenForUser finds the user's open cart for a region, with items
	FindOpenForUser(ctx context.Context, userID, regionID uuid.UUID) (*Cart, error)
	// FindAllForUser lists the user's carts
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Cart, error)
	// CountForUser counts the user's carts matching the filter
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	// Save creates or updates a cart and appends any new items
	Save(ctx context.Context, cart *Cart) error
	// UpdateStatus persists a status transition made on the loaded cart.
	// It fails with shared.ErrConcurrencyConflict when the stored version moved on.
	UpdateStatus(ctx context.Context, cart *Cart) error
	// DeleteForUser deletes a cart owned by the user together with its items
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}

// OrderRepository defines persistence for orders
type OrderRepository interface {
	// FindByIDForUser finds an order owned by the user, with items
	FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*Order, error)
	// FindAllForUser lists the user's orders, with items
	FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)
	// CountForUser counts the user's orders matching the filter
	CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	// Create inserts a new order and its items
	Create(ctx context.Context, order *Order) error
	// DeleteForUser deletes an order owned by the user together with its items
	DeleteForUser(ctx context.Context, userID, id uuid.UUID) error
}
