package handler

import (
	"github.com/gin-gonic/gin"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
)

// UsageHandler reports how much of today's caps is used
type UsageHandler struct {
	BaseHandler
	usageService *apprationing.UsageService
}

// NewUsageHandler creates a new UsageHandler
func NewUsageHandler(usageService *apprationing.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// Today returns global and per-region usage for the current sale day
func (h *UsageHandler) Today(c *gin.Context) {
	report, err := h.usageService.Today(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, report)
}
