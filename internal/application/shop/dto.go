package shop

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/shopspring/decimal"
)

// ==================== Order DTOs ====================

// CreateOrderRequest converts a cart into an order for the named region
type CreateOrderRequest struct {
	CartID     uuid.UUID `json:"cart_id" binding:"required"`
	RegionName string    `json:"region" binding:"required,regionname"`
}

// OrderItemResult is one unit in an OrderResult
type OrderItemResult struct {
	Name      string          `json:"name"`
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderResult is returned by a successful order placement
type OrderResult struct {
	OrderID     uuid.UUID         `json:"order_id"`
	OrderStatus string            `json:"order_status"`
	Items       []OrderItemResult `json:"items"`
	Region      string            `json:"region"`
	SaleDay     rationing.Day     `json:"sale_day"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	CartID      uuid.UUID           `json:"cart_id"`
	RegionID    uuid.UUID           `json:"region_id"`
	RegionName  string              `json:"region_name"`
	Status      string              `json:"status"`
	SaleDay     rationing.Day       `json:"sale_day"`
	Items       []OrderItemResponse `json:"items"`
	ItemCount   int                 `json:"item_count"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	CreatedAt   time.Time           `json:"created_at"`
}

// OrderListFilter represents filter options for the user's order list
type OrderListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING COMPLETED CANCELED"`
	SaleDay  string `form:"sale_day" binding:"omitempty,datetime=2006-01-02"`
}

// ToOrderResult converts a placed order into the placement result
func ToOrderResult(o *shop.Order) *OrderResult {
	items := make([]OrderItemResult, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResult{
			Name:      item.ProductName,
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
		}
	}
	return &OrderResult{
		OrderID:     o.ID,
		OrderStatus: o.Status.String(),
		Items:       items,
		Region:      o.RegionName,
		SaleDay:     o.SaleDay,
		TotalAmount: o.TotalAmount,
	}
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *shop.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Position:    item.Position,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		CartID:      o.CartID,
		RegionID:    o.RegionID,
		RegionName:  o.RegionName,
		Status:      o.Status.String(),
		SaleDay:     o.SaleDay,
		Items:       items,
		ItemCount:   len(items),
		TotalAmount: o.TotalAmount,
		CreatedAt:   o.CreatedAt,
	}
}

// ==================== Cart DTOs ====================

// CartItemInput names one unit to append to a cart
type CartItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
}

// AddToCartRequest appends items to the user's open cart for a region,
// creating the cart when none is open
type AddToCartRequest struct {
	RegionID uuid.UUID       `json:"region_id" binding:"required"`
	Items    []CartItemInput `json:"items" binding:"required,min=1,max=100,dive"`
}

// CartItemResponse represents a cart item in API responses
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Position    int             `json:"position"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	RegionID  uuid.UUID          `json:"region_id"`
	Status    string             `json:"status"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	ClosedAt  *time.Time         `json:"closed_at,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// CartListFilter represents filter options for the user's cart list
type CartListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Status   string `form:"status" binding:"omitempty,oneof=OPEN CLOSED"`
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *shop.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i, item := range c.Items {
		items[i] = CartItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Position:    item.Position,
		}
	}
	return CartResponse{
		ID:        c.ID,
		RegionID:  c.RegionID,
		Status:    c.Status.String(),
		Items:     items,
		ItemCount: len(items),
		ClosedAt:  c.ClosedAt,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ==================== Product DTOs ====================

// CreateProductRequest represents a request to add a sellable item
type CreateProductRequest struct {
	Name  string          `json:"name" binding:"required,min=1,max=256"`
	Price decimal.Decimal `json:"price"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductListFilter represents filter options for the catalog
type ProductListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *shop.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}
