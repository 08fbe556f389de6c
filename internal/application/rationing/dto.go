package rationing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
)

// ==================== Region DTOs ====================

// CreateRegionRequest represents a request to register a region
type CreateRegionRequest struct {
	Name            string `json:"name" binding:"required,regionname"`
	DailyLimit      int    `json:"daily_limit" binding:"min=0"`
	ClosedAccess    bool   `json:"closed_access"`
	UnlimitedAccess bool   `json:"unlimited_access"`
}

// UpdateRegionRequest represents a request to change a region.
// Nil fields keep their current value.
type UpdateRegionRequest struct {
	Name            *string `json:"name" binding:"omitempty,regionname"`
	DailyLimit      *int    `json:"daily_limit" binding:"omitempty,min=0"`
	ClosedAccess    *bool   `json:"closed_access"`
	UnlimitedAccess *bool   `json:"unlimited_access"`
}

// RegionResponse represents a region in API responses
type RegionResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DailyLimit      int       `json:"daily_limit"`
	ClosedAccess    bool      `json:"closed_access"`
	UnlimitedAccess bool      `json:"unlimited_access"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RegionListFilter represents filter options for the region list
type RegionListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search" binding:"omitempty,max=64"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToRegionResponse converts a domain Region to RegionResponse
func ToRegionResponse(r *rationing.Region) RegionResponse {
	return RegionResponse{
		ID:              r.ID,
		Name:            r.Name,
		DailyLimit:      r.DailyLimit,
		ClosedAccess:    r.ClosedAccess,
		UnlimitedAccess: r.UnlimitedAccess,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ==================== Global limit DTOs ====================

// SetGlobalLimitRequest replaces the global daily cap
type SetGlobalLimitRequest struct {
	DailyLimit int `json:"daily_limit" binding:"required,min=1"`
}

// GlobalLimitResponse represents the global limit in API responses
type GlobalLimitResponse struct {
	ID         uuid.UUID `json:"id"`
	DailyLimit int       `json:"daily_limit"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToGlobalLimitResponse converts a domain GlobalLimit to GlobalLimitResponse
func ToGlobalLimitResponse(g *rationing.GlobalLimit) GlobalLimitResponse {
	return GlobalLimitResponse{
		ID:         g.ID,
		DailyLimit: g.DailyLimit,
		CreatedAt:  g.CreatedAt,
	}
}

// ==================== Usage DTOs ====================

// RegionUsageResponse is one region's line in the usage report
type RegionUsageResponse struct {
	RegionID        uuid.UUID `json:"region_id"`
	Name            string    `json:"name"`
	Usage           int64     `json:"usage"`
	DailyLimit      int       `json:"daily_limit"`
	ClosedAccess    bool      `json:"closed_access"`
	UnlimitedAccess bool      `json:"unlimited_access"`
	// Remaining is omitted for unlimited regions
	Remaining *int64 `json:"remaining,omitempty"`
}

// UsageReportResponse shows how much of today's caps is used
type UsageReportResponse struct {
	SaleDay     rationing.Day         `json:"sale_day"`
	GlobalUsage int64                 `json:"global_usage"`
	GlobalLimit *int                  `json:"global_limit"`
	Remaining   *int64                `json:"remaining"`
	Regions     []RegionUsageResponse `json:"regions"`
}
