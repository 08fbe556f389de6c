package rationing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockRegionRepository is a mock implementation of rationing.RegionRepository
type MockRegionRepository struct {
	mock.Mock
}

func (m *MockRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*rationing.Region, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rationing.Region), args.Error(1)
}

func (m *MockRegionRepository) FindByName(ctx context.Context, name string) (*rationing.Region, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rationing.Region), args.Error(1)
}

func (m *MockRegionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rationing.Region, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]rationing.Region), args.Error(1)
}

func (m *MockRegionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegionRepository) Save(ctx context.Context, region *rationing.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}

func (m *MockRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRegionRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockGlobalLimitRepository is a mock implementation of rationing.GlobalLimitRepository
type MockGlobalLimitRepository struct {
	mock.Mock
}

func (m *MockGlobalLimitRepository) Current(ctx context.Context) (*rationing.GlobalLimit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rationing.GlobalLimit), args.Error(1)
}

func (m *MockGlobalLimitRepository) Replace(ctx context.Context, limit *rationing.GlobalLimit) error {
	args := m.Called(ctx, limit)
	return args.Error(0)
}

// MockUsageCounter is a mock implementation of rationing.UsageCounter
type MockUsageCounter struct {
	mock.Mock
}

func (m *MockUsageCounter) GlobalUsage(ctx context.Context, day rationing.Day) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageCounter) RegionUsage(ctx context.Context, regionID uuid.UUID, day rationing.Day) (int64, error) {
	args := m.Called(ctx, regionID, day)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUsageCounter) UsageByRegion(ctx context.Context, day rationing.Day) (map[uuid.UUID]int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(map[uuid.UUID]int64), args.Error(1)
}
