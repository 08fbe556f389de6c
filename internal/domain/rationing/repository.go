package rationing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
)

// RegionRepository defines persistence for regions
type RegionRepository interface {
	// FindByID finds a region by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Region, error)
	// FindByName finds a region by its unique name
	FindByName(ctx context.Context, name string) (*Region, error)
	// FindAll lists regions, filtered by name search
	FindAll(ctx context.Context, filter shared.Filter) ([]Region, error)
	// Count counts regions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	// ExistsByName checks whether a region name is taken
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Save creates or updates a region
	Save(ctx context.Context, region *Region) error
	// Delete removes a region
	Delete(ctx context.Context, id uuid.UUID) error
	// IsReferenced reports whether any cart or order points at the region
	IsReferenced(ctx context.Context, id uuid.UUID) (bool, error)
}

// GlobalLimitRepository stores the singleton global limit
type GlobalLimitRepository interface {
	// Current returns the configured limit or shared.ErrNotFound
	Current(ctx context.Context) (*GlobalLimit, error)
	// Replace stores limit and deletes every other row atomically
	Replace(ctx context.Context, limit *GlobalLimit) error
}

// UsageCounter counts units sold on a day. Implementations bound to a
// transaction must observe that transaction's own uncommitted writes.
type UsageCounter interface {
	// GlobalUsage counts order items of all orders placed on day
	GlobalUsage(ctx context.Context, day Day) (int64, error)
	// RegionUsage counts order items of the region's orders placed on day
	RegionUsage(ctx context.Context, regionID uuid.UUID, day Day) (int64, error)
	// UsageByRegion counts order items per region for day
	UsageByRegion(ctx context.Context, day Day) (map[uuid.UUID]int64, error)
}

// SaleDayLock serializes order placement for a single day
type SaleDayLock interface {
	// Acquire blocks until the caller's transaction holds the day's lock.
	// The lock is released when the transaction ends.
	Acquire(ctx context.Context, day Day) error
}
