package handler

import (
	"github.com/gin-gonic/gin"
	appshop "github.com/rationshop/backend/internal/application/shop"
)

// OrderHandler handles order placement and the caller's order history
type OrderHandler struct {
	BaseHandler
	orderService *appshop.OrderPlacementService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *appshop.OrderPlacementService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create converts the caller's cart into an order.
//
//	POST /orders {"cart_id": "...", "region": "north"}
//
// Rationing refusals answer 422 with the rejection kind as error code.
func (h *OrderHandler) Create(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req appshop.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// List returns a page of the caller's orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var filter appshop.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// GetByID returns one of the caller's orders
func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete removes one of the caller's orders
func (h *OrderHandler) Delete(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), userID, orderID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
