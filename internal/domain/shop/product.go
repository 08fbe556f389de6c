package shop

import (
	"strings"

	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxProductNameLength is the longest accepted product name
const MaxProductNameLength = 256

// Product is a sellable item. Every cart item and order item is one unit of a product.
type Product struct {
	shared.BaseEntity
	Name  string
	Price decimal.Decimal
}

// NewProduct creates a new sellable item
func NewProduct(name string, price decimal.Decimal) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len([]rune(name)) > MaxProductNameLength {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 256 characters")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price,
	}, nil
}
