package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
)

// ErrProductNotFound is returned when a cart item names an unknown product
var ErrProductNotFound = shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist.")

// CartService handles the user's carts
type CartService struct {
	carts    shop.CartRepository
	products shop.ProductRepository
	regions  rationing.RegionRepository
}

// NewCartService creates a new CartService
func NewCartService(carts shop.CartRepository, products shop.ProductRepository, regions rationing.RegionRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		regions:  regions,
	}
}

// AddToCart appends one unit per requested item to the user's open cart for
// the region, creating that cart first when the user has none open.
func (s *CartService) AddToCart(ctx context.Context, userID uuid.UUID, req AddToCartRequest) (*CartResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "At least one item is required")
	}

	if _, err := s.regions.FindByID(ctx, req.RegionID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, rationing.ErrRegionNotFound
		}
		return nil, fmt.Errorf("load region: %w", err)
	}

	products, err := s.loadProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindOpenForUser(ctx, userID, req.RegionID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("load open cart: %w", err)
		}
		cart, err = shop.NewCart(userID, req.RegionID)
		if err != nil {
			return nil, err
		}
	}

	for _, item := range req.Items {
		if _, err := cart.AddItem(products[item.ProductID]); err != nil {
			return nil, err
		}
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// loadProducts resolves every requested product id, failing on the first unknown one
func (s *CartService) loadProducts(ctx context.Context, items []CartItemInput) (map[uuid.UUID]*shop.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[uuid.UUID]*shop.Product, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, ErrProductNotFound
		}
	}
	return byID, nil
}

// GetCart returns one of the user's carts
func (s *CartService) GetCart(ctx context.Context, userID, cartID uuid.UUID) (*CartResponse, error) {
	cart, err := s.carts.FindByIDForUser(ctx, userID, cartID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// ListCarts returns a page of the user's carts
func (s *CartService) ListCarts(ctx context.Context, userID uuid.UUID, filter CartListFilter) ([]CartResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, "")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	carts, err := s.carts.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.carts.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CartResponse, len(carts))
	for i := range carts {
		responses[i] = ToCartResponse(&carts[i])
	}
	return responses, total, nil
}

// DeleteCart removes one of the user's carts. Orders placed from it are kept.
func (s *CartService) DeleteCart(ctx context.Context, userID, cartID uuid.UUID) error {
	return s.carts.DeleteForUser(ctx, userID, cartID)
}
