package handler

import (
	"github.com/gin-gonic/gin"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
)

// GlobalLimitHandler handles the shop-wide daily cap
type GlobalLimitHandler struct {
	BaseHandler
	limitService *apprationing.GlobalLimitService
}

// NewGlobalLimitHandler creates a new GlobalLimitHandler
func NewGlobalLimitHandler(limitService *apprationing.GlobalLimitService) *GlobalLimitHandler {
	return &GlobalLimitHandler{limitService: limitService}
}

// Get returns the current cap. Answers GLOBAL_LIMIT_NOT_SET while none is configured.
func (h *GlobalLimitHandler) Get(c *gin.Context) {
	limit, err := h.limitService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limit)
}

// Set replaces the cap
//
//	PUT /admin/global-limit {"daily_limit": 500}
func (h *GlobalLimitHandler) Set(c *gin.Context) {
	var req apprationing.SetGlobalLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	limit, err := h.limitService.Set(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, limit)
}
