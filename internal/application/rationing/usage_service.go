package rationing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
)

const reportPageSize = 100

// UsageService reports how much of today's caps has been sold
type UsageService struct {
	regions  rationing.RegionRepository
	limits   rationing.GlobalLimitRepository
	usage    rationing.UsageCounter
	clock    func() time.Time
	location *time.Location
}

// NewUsageService creates a new UsageService
func NewUsageService(regions rationing.RegionRepository, limits rationing.GlobalLimitRepository, usage rationing.UsageCounter) *UsageService {
	return &UsageService{
		regions:  regions,
		limits:   limits,
		usage:    usage,
		clock:    time.Now,
		location: time.UTC,
	}
}

// SetClock replaces the time source used to pick the sale day
func (s *UsageService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetLocation sets the time zone whose calendar day is reported
func (s *UsageService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.location = loc
	}
}

// Today reports usage for the current sale day. A missing global limit
// leaves GlobalLimit and Remaining empty instead of failing.
func (s *UsageService) Today(ctx context.Context) (*UsageReportResponse, error) {
	day := rationing.DayOf(s.clock().In(s.location))

	globalUsage, err := s.usage.GlobalUsage(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("count global usage: %w", err)
	}
	byRegion, err := s.usage.UsageByRegion(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("count usage by region: %w", err)
	}

	report := &UsageReportResponse{
		SaleDay:     day,
		GlobalUsage: globalUsage,
		Regions:     make([]RegionUsageResponse, 0),
	}

	limit, err := s.limits.Current(ctx)
	switch {
	case err == nil:
		dailyLimit := limit.DailyLimit
		remaining := limit.Remaining(globalUsage)
		report.GlobalLimit = &dailyLimit
		report.Remaining = &remaining
	case !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("load global limit: %w", err)
	}

	regions, err := s.allRegions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regions {
		report.Regions = append(report.Regions, regionUsage(&regions[i], byRegion[regions[i].ID]))
	}
	return report, nil
}

func (s *UsageService) allRegions(ctx context.Context) ([]rationing.Region, error) {
	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	filter.PageSize = reportPageSize

	var all []rationing.Region
	for {
		page, err := s.regions.FindAll(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list regions: %w", err)
		}
		all = append(all, page...)
		if len(page) < filter.PageSize {
			return all, nil
		}
		filter.Page++
	}
}

func regionUsage(region *rationing.Region, usage int64) RegionUsageResponse {
	line := RegionUsageResponse{
		RegionID:        region.ID,
		Name:            region.Name,
		Usage:           usage,
		DailyLimit:      region.DailyLimit,
		ClosedAccess:    region.ClosedAccess,
		UnlimitedAccess: region.UnlimitedAccess,
	}
	if region.UnlimitedAccess {
		return line
	}

	var remaining int64
	if !region.ClosedAccess && usage < int64(region.DailyLimit) {
		remaining = int64(region.DailyLimit) - usage
	}
	line.Remaining = &remaining
	return line
}
