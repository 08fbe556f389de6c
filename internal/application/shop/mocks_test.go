package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/stretchr/testify/mock"
)

// MockCartRepository is a mock implementation of shop.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shop.Cart, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Cart), args.Error(1)
}

func (m *MockCartRepository) FindOpenForUser(ctx context.Context, userID, regionID uuid.UUID) (*shop.Cart, error) {
	args := m.Called(ctx, userID, regionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Cart), args.Error(1)
}

func (m *MockCartRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shop.Cart, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]shop.Cart), args.Error(1)
}

func (m *MockCartRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *shop.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateStatus(ctx context.Context, cart *shop.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockOrderRepository is a mock implementation of shop.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shop.Order, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shop.Order, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).([]shop.Order), args.Error(1)
}

func (m *MockOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *shop.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of shop.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shop.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]shop.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shop.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]shop.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *shop.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

// MockSaleDayLock is a mock implementation of rationing.SaleDayLock
type MockSaleDayLock struct {
	mock.Mock
}

func (m *MockSaleDayLock) Acquire(ctx context.Context, day rationing.Day) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

// MockEventSaver is a mock implementation of shared.EventSaver
type MockEventSaver struct {
	mock.Mock
}

func (m *MockEventSaver) SaveEvents(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}
