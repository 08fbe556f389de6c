package shop

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartStatus represents the status of a cart
type CartStatus string

const (
	CartStatusOpen   CartStatus = "OPEN"
	CartStatusClosed CartStatus = "CLOSED"
)

// IsValid checks if the status is a valid CartStatus
func (s CartStatus) IsValid() bool {
	return s == CartStatusOpen || s == CartStatusClosed
}

// String returns the string representation of CartStatus
func (s CartStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CartStatus) CanTransitionTo(target CartStatus) bool {
	return s == CartStatusOpen && target == CartStatusClosed
}

var (
	ErrCartClosed = shared.NewDomainError("CART_CLOSED", "Cart is already closed.")
	ErrCartEmpty  = shared.NewDomainError("CART_EMPTY", "Cart has no items.")
)

// CartItem is one unit of a product in a cart
type CartItem struct {
	ID          uuid.UUID
	CartID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Position    int
	CreatedAt   time.Time
}

// Cart is a user's basket for a single region.
// It is closed exactly once, when an order is placed from it.
type Cart struct {
	shared.BaseAggregateRoot
	UserID   uuid.UUID
	RegionID uuid.UUID
	Status   CartStatus
	Items    []CartItem
	ClosedAt *time.Time
}

// NewCart creates an open, empty cart
func NewCart(userID, regionID uuid.UUID) (*Cart, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if regionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REGION", "Region ID cannot be empty")
	}

	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		RegionID:          regionID,
		Status:            CartStatusOpen,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem appends one unit of product to the cart
func (c *Cart) AddItem(product *Product) (*CartItem, error) {
	if !c.IsOpen() {
		return nil, ErrCartClosed
	}
	if product == nil || product.ID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be empty")
	}

	now := time.Now()
	item := CartItem{
		ID:          uuid.New(),
		CartID:      c.ID,
		ProductID:   product.ID,
		ProductName: product.Name,
		UnitPrice:   product.Price,
		Position:    len(c.Items),
		CreatedAt:   now,
	}
	c.Items = append(c.Items, item)
	c.Touch(now)

	return &c.Items[len(c.Items)-1], nil
}

// Close marks the cart as converted into an order
func (c *Cart) Close() error {
	if !c.Status.CanTransitionTo(CartStatusClosed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot close cart in %s status", c.Status))
	}

	now := time.Now()
	c.Status = CartStatusClosed
	c.ClosedAt = &now
	c.Touch(now)
	c.IncrementVersion()

	return nil
}

// IsOpen reports whether the cart can still be modified or ordered
func (c *Cart) IsOpen() bool {
	return c.Status == CartStatusOpen
}

// BelongsTo reports whether the cart is owned by userID
func (c *Cart) BelongsTo(userID uuid.UUID) bool {
	return c.UserID == userID
}

// ItemCount returns the number of units in the cart
func (c *Cart) ItemCount() int {
	return len(c.Items)
}
