package rationing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
)

// RegionService manages the region registry
type RegionService struct {
	regions rationing.RegionRepository
}

// NewRegionService creates a new RegionService
func NewRegionService(regions rationing.RegionRepository) *RegionService {
	return &RegionService{regions: regions}
}

// Create registers a region
func (s *RegionService) Create(ctx context.Context, req CreateRegionRequest) (*RegionResponse, error) {
	if err := s.ensureNameFree(ctx, req.Name); err != nil {
		return nil, err
	}

	region, err := rationing.NewRegion(req.Name, req.DailyLimit, req.ClosedAccess, req.UnlimitedAccess)
	if err != nil {
		return nil, err
	}

	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}

	response := ToRegionResponse(region)
	return &response, nil
}

// Update changes a region's name, cap or access flags
func (s *RegionService) Update(ctx context.Context, id uuid.UUID, req UpdateRegionRequest) (*RegionResponse, error) {
	region, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != region.Name {
		if err := s.ensureNameFree(ctx, *req.Name); err != nil {
			return nil, err
		}
		if err := region.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	dailyLimit, closed, unlimited := region.DailyLimit, region.ClosedAccess, region.UnlimitedAccess
	if req.DailyLimit != nil {
		dailyLimit = *req.DailyLimit
	}
	if req.ClosedAccess != nil {
		closed = *req.ClosedAccess
	}
	if req.UnlimitedAccess != nil {
		unlimited = *req.UnlimitedAccess
	}
	if err := region.Update(dailyLimit, closed, unlimited); err != nil {
		return nil, err
	}

	if err := s.regions.Save(ctx, region); err != nil {
		return nil, err
	}

	response := ToRegionResponse(region)
	return &response, nil
}

// GetByID retrieves a region by ID
func (s *RegionService) GetByID(ctx context.Context, id uuid.UUID) (*RegionResponse, error) {
	region, err := s.regions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRegionResponse(region)
	return &response, nil
}

// List retrieves a page of regions, optionally filtered by name
func (s *RegionService) List(ctx context.Context, filter RegionListFilter) ([]RegionResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "name"
	domainFilter.OrderDir = "asc"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	regions, err := s.regions.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.regions.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RegionResponse, len(regions))
	for i := range regions {
		responses[i] = ToRegionResponse(&regions[i])
	}
	return responses, total, nil
}

// Delete removes a region that no cart or order refers to
func (s *RegionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.regions.FindByID(ctx, id); err != nil {
		return err
	}

	referenced, err := s.regions.IsReferenced(ctx, id)
	if err != nil {
		return fmt.Errorf("check region references: %w", err)
	}
	if referenced {
		return rationing.ErrRegionInUse
	}

	return s.regions.Delete(ctx, id)
}

func (s *RegionService) ensureNameFree(ctx context.Context, name string) error {
	exists, err := s.regions.ExistsByName(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return rationing.ErrRegionNameExists
	}
	return nil
}
