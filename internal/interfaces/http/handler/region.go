package handler

import (
	"github.com/gin-gonic/gin"
	apprationing "github.com/rationshop/backend/internal/application/rationing"
)

// RegionHandler handles region administration
type RegionHandler struct {
	BaseHandler
	regionService *apprationing.RegionService
}

// NewRegionHandler creates a new RegionHandler
func NewRegionHandler(regionService *apprationing.RegionService) *RegionHandler {
	return &RegionHandler{regionService: regionService}
}

// Create registers a region
//
//	POST /admin/regions {"name": "north", "daily_limit": 50, "closed_access": false, "unlimited_access": false}
func (h *RegionHandler) Create(c *gin.Context) {
	var req apprationing.CreateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	region, err := h.regionService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, region)
}

// Update changes a region. Omitted fields keep their value.
func (h *RegionHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req apprationing.UpdateRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	region, err := h.regionService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, region)
}

// GetByID returns one region
func (h *RegionHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	region, err := h.regionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, region)
}

// List returns a page of regions
func (h *RegionHandler) List(c *gin.Context) {
	var filter apprationing.RegionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	regions, total, err := h.regionService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, regions, total, pageOrDefault(filter.Page), pageSizeOrDefault(filter.PageSize))
}

// Delete removes a region that no cart or order references
func (h *RegionHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.regionService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
