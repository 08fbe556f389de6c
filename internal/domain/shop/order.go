package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCanceled  OrderStatus = "CANCELED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusCompleted || target == OrderStatusCanceled
	case OrderStatusCompleted, OrderStatusCanceled:
		return false // Terminal states
	}
	return false
}

// OrderItem is one sold unit. It counts once towards the daily caps.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	UnitPrice   decimal.Decimal
	Position    int
	CreatedAt   time.Time
}

// Order is the result of converting a cart. SaleDay is the calendar day
// whose caps the order's items count against.
type Order struct {
	shared.BaseAggregateRoot
	UserID      uuid.UUID
	CartID      uuid.UUID
	RegionID    uuid.UUID
	RegionName  string
	Status      OrderStatus
	SaleDay     rationing.Day
	Items       []OrderItem
	TotalAmount decimal.Decimal
}

// PlaceOrder builds a pending order from an open cart for the given region and day.
// Each cart item becomes exactly one order item. The cart itself is not modified.
func PlaceOrder(cart *Cart, region *rationing.Region, day rationing.Day) (*Order, error) {
	if cart == nil || region == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Cart and region are required")
	}
	if !cart.IsOpen() {
		return nil, ErrCartClosed
	}
	if cart.RegionID != region.ID {
		return nil, rationing.ErrRegionMismatch
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if day.IsZero() {
		return nil, shared.NewDomainError("INVALID_SALE_DAY", "Sale day cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            cart.UserID,
		CartID:            cart.ID,
		RegionID:          region.ID,
		RegionName:        region.Name,
		Status:            OrderStatusPending,
		SaleDay:           day,
		Items:             make([]OrderItem, 0, len(cart.Items)),
		TotalAmount:       decimal.Zero,
	}

	for i, ci := range cart.Items {
		order.Items = append(order.Items, OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   ci.ProductID,
			ProductName: ci.ProductName,
			UnitPrice:   ci.UnitPrice,
			Position:    i,
			CreatedAt:   order.CreatedAt,
		})
		order.TotalAmount = order.TotalAmount.Add(ci.UnitPrice)
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// ItemCount returns the number of units in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// BelongsTo reports whether the order is owned by userID
func (o *Order) BelongsTo(userID uuid.UUID) bool {
	return o.UserID == userID
}
