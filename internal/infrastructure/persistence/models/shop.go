package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for shop.Product
type ProductModel struct {
	BaseModel
	Name  string          `gorm:"type:varchar(256);not null"`
	Price decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *shop.Product {
	return &shop.Product{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Price:      m.Price,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *shop.Product) *ProductModel {
	m := &ProductModel{Name: p.Name, Price: p.Price}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CartModel is the persistence model for the shop.Cart aggregate
type CartModel struct {
	AggregateModel
	UserID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_user_region_status,priority:1"`
	RegionID uuid.UUID       `gorm:"type:uuid;not null;index:idx_cart_user_region_status,priority:2"`
	Status   shop.CartStatus `gorm:"type:varchar(16);not null;index:idx_cart_user_region_status,priority:3"`
	ClosedAt *time.Time
	Items    []CartItemModel `gorm:"foreignKey:CartID;references:ID"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts the persistence model to a domain Cart
func (m *CartModel) ToDomain() *shop.Cart {
	cart := &shop.Cart{
		BaseAggregateRoot: m.AggregateModel.ToDomainAggregate(),
		UserID:            m.UserID,
		RegionID:          m.RegionID,
		Status:            m.Status,
		ClosedAt:          m.ClosedAt,
		Items:             make([]shop.CartItem, len(m.Items)),
	}
	for i := range m.Items {
		cart.Items[i] = m.Items[i].ToDomain()
	}
	return cart
}

// CartModelFromDomain creates a persistence model from a domain Cart
func CartModelFromDomain(c *shop.Cart) *CartModel {
	m := &CartModel{
		UserID:   c.UserID,
		RegionID: c.RegionID,
		Status:   c.Status,
		ClosedAt: c.ClosedAt,
		Items:    make([]CartItemModel, len(c.Items)),
	}
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	for i := range c.Items {
		m.Items[i] = *CartItemModelFromDomain(&c.Items[i])
	}
	return m
}

// CartItemModel is the persistence model for shop.CartItem
type CartItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CartID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(256);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position    int             `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem
func (m *CartItemModel) ToDomain() shop.CartItem {
	return shop.CartItem{
		ID:          m.ID,
		CartID:      m.CartID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
	}
}

// CartItemModelFromDomain creates a persistence model from a domain CartItem
func CartItemModelFromDomain(i *shop.CartItem) *CartItemModel {
	return &CartItemModel{
		ID:          i.ID,
		CartID:      i.CartID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		UnitPrice:   i.UnitPrice,
		Position:    i.Position,
		CreatedAt:   i.CreatedAt,
	}
}

// OrderModel is the persistence model for the shop.Order aggregate
type OrderModel struct {
	AggregateModel
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	CartID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	RegionID    uuid.UUID        `gorm:"type:uuid;not null;index:idx_order_region_day,priority:1"`
	RegionName  string           `gorm:"type:varchar(64);not null"`
	Status      shop.OrderStatus `gorm:"type:varchar(16);not null"`
	SaleDay     rationing.Day    `gorm:"type:date;not null;index;index:idx_order_region_day,priority:2"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *shop.Order {
	order := &shop.Order{
		BaseAggregateRoot: m.AggregateModel.ToDomainAggregate(),
		UserID:            m.UserID,
		CartID:            m.CartID,
		RegionID:          m.RegionID,
		RegionName:        m.RegionName,
		Status:            m.Status,
		SaleDay:           m.SaleDay,
		TotalAmount:       m.TotalAmount,
		Items:             make([]shop.OrderItem, len(m.Items)),
	}
	for i := range m.Items {
		order.Items[i] = m.Items[i].ToDomain()
	}
	return order
}

// OrderModelFromDomain creates a persistence model from a domain Order
func OrderModelFromDomain(o *shop.Order) *OrderModel {
	m := &OrderModel{
		UserID:      o.UserID,
		CartID:      o.CartID,
		RegionID:    o.RegionID,
		RegionName:  o.RegionName,
		Status:      o.Status,
		SaleDay:     o.SaleDay,
		TotalAmount: o.TotalAmount,
		Items:       make([]OrderItemModel, len(o.Items)),
	}
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	for i := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&o.Items[i])
	}
	return m
}

// OrderItemModel is the persistence model for shop.OrderItem
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(256);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position    int             `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() shop.OrderItem {
	return shop.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		UnitPrice:   m.UnitPrice,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
	}
}

// OrderItemModelFromDomain creates a persistence model from a domain OrderItem
func OrderItemModelFromDomain(i *shop.OrderItem) *OrderItemModel {
	return &OrderItemModel{
		ID:          i.ID,
		OrderID:     i.OrderID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		UnitPrice:   i.UnitPrice,
		Position:    i.Position,
		CreatedAt:   i.CreatedAt,
	}
}

// All returns every model in dependency order, for AutoMigrate in tests
func All() []any {
	return []any{
		&RegionModel{},
		&GlobalLimitModel{},
		&SaleDayModel{},
		&ProductModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&OutboxEntryModel{},
	}
}
