package handler

import (
	"github.com/gin-gonic/gin"
	appshop "github.com/rationshop/backend/internal/application/shop"
)

// CartHandler handles the caller's carts
type CartHandler struct {
	BaseHandler
	cartService *appshop.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appshop.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Create appends items to the caller's open cart for the region, opening
// one when needed.
//
//	POST /carts {"region_id": "...", "items": [{"product_id": "..."}]}
func (h *CartHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req appshop.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	cart, err := h.cartService.AddToCart(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, cart)
}

// List returns a page of the caller's carts
func (h *CartHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var filter appshop.CartListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	carts, total, err := h.cartService.ListCarts(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, carts, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID returns one of the caller's carts
func (h *CartHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	cartID, ok := h.pathID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(c.Request.Context(), userID, cartID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// Delete removes one of the caller's carts. Orders placed from it are kept.
func (h *CartHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	cartID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.cartService.DeleteCart(c.Request.Context(), userID, cartID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
