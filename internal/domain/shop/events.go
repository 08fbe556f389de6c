package shop

import (
	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced = "OrderPlaced"
)

// OrderPlacedItem describes one unit in an OrderPlacedEvent
type OrderPlacedItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// OrderPlacedEvent is raised when an order passes the daily caps and is committed
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID         `json:"order_id"`
	UserID      uuid.UUID         `json:"user_id"`
	CartID      uuid.UUID         `json:"cart_id"`
	RegionID    uuid.UUID         `json:"region_id"`
	RegionName  string            `json:"region_name"`
	SaleDay     rationing.Day     `json:"sale_day"`
	Items       []OrderPlacedItem `json:"items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	items := make([]OrderPlacedItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderPlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
		}
	}

	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEventAt(EventTypeOrderPlaced, AggregateTypeOrder, order.ID, order.CreatedAt),
		OrderID:         order.ID,
		UserID:          order.UserID,
		CartID:          order.CartID,
		RegionID:        order.RegionID,
		RegionName:      order.RegionName,
		SaleDay:         order.SaleDay,
		Items:           items,
		TotalAmount:     order.TotalAmount,
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}
