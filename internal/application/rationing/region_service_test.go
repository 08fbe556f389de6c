package rationing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRegion(t *testing.T, name string, limit int, closed, unlimited bool) *rationing.Region {
	t.Helper()
	region, err := rationing.NewRegion(name, limit, closed, unlimited)
	require.NoError(t, err)
	return region
}

func ptr[T any](v T) *T {
	return &v
}

func TestRegionService_Create(t *testing.T) {
	t.Run("creates region", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		repo.On("ExistsByName", mock.Anything, "EU").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*rationing.Region")).Return(nil)

		resp, err := service.Create(context.Background(), CreateRegionRequest{Name: "EU", DailyLimit: 3})

		require.NoError(t, err)
		assert.Equal(t, "EU", resp.Name)
		assert.Equal(t, 3, resp.DailyLimit)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		repo.On("ExistsByName", mock.Anything, "EU").Return(true, nil)

		_, err := service.Create(context.Background(), CreateRegionRequest{Name: "EU", DailyLimit: 3})

		assert.ErrorIs(t, err, rationing.ErrRegionNameExists)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects closed and unlimited together", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		repo.On("ExistsByName", mock.Anything, "EU").Return(false, nil)

		_, err := service.Create(context.Background(), CreateRegionRequest{Name: "EU", ClosedAccess: true, UnlimitedAccess: true})

		require.Error(t, err)
		assert.Equal(t, "Region cannot have closed and unlimited access at the same time.", err.Error())
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestRegionService_Update(t *testing.T) {
	t.Run("applies only the given fields", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, false, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		repo.On("Save", mock.Anything, region).Return(nil)

		resp, err := service.Update(context.Background(), region.ID, UpdateRegionRequest{ClosedAccess: ptr(true)})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.DailyLimit)
		assert.True(t, resp.ClosedAccess)
		assert.False(t, resp.UnlimitedAccess)
	})

	t.Run("renames when the new name is free", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, false, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		repo.On("ExistsByName", mock.Anything, "Europe").Return(false, nil)
		repo.On("Save", mock.Anything, region).Return(nil)

		resp, err := service.Update(context.Background(), region.ID, UpdateRegionRequest{Name: ptr("Europe")})

		require.NoError(t, err)
		assert.Equal(t, "Europe", resp.Name)
	})

	t.Run("keeping the same name skips the uniqueness check", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, false, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		repo.On("Save", mock.Anything, region).Return(nil)

		_, err := service.Update(context.Background(), region.ID, UpdateRegionRequest{Name: ptr("EU"), DailyLimit: ptr(7)})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)
	})

	t.Run("rejects making a closed region unlimited", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, true, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)

		_, err := service.Update(context.Background(), region.ID, UpdateRegionRequest{UnlimitedAccess: ptr(true)})

		assert.ErrorIs(t, err, rationing.ErrRegionAccessConflict)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown region", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateRegionRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestRegionService_Delete(t *testing.T) {
	t.Run("deletes unreferenced region", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, false, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		repo.On("IsReferenced", mock.Anything, region.ID).Return(false, nil)
		repo.On("Delete", mock.Anything, region.ID).Return(nil)

		require.NoError(t, service.Delete(context.Background(), region.ID))
		repo.AssertExpectations(t)
	})

	t.Run("refuses while carts or orders refer to it", func(t *testing.T) {
		repo := new(MockRegionRepository)
		service := NewRegionService(repo)
		region := newTestRegion(t, "EU", 3, false, false)
		repo.On("FindByID", mock.Anything, region.ID).Return(region, nil)
		repo.On("IsReferenced", mock.Anything, region.ID).Return(true, nil)

		err := service.Delete(context.Background(), region.ID)

		assert.ErrorIs(t, err, rationing.ErrRegionInUse)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRegionService_List(t *testing.T) {
	repo := new(MockRegionRepository)
	service := NewRegionService(repo)
	region := newTestRegion(t, "EU", 3, false, false)

	matches := mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.OrderBy == "name" && filter.OrderDir == "asc" && filter.Search == "E"
	})
	repo.On("FindAll", mock.Anything, matches).Return([]rationing.Region{*region}, nil)
	repo.On("Count", mock.Anything, matches).Return(int64(1), nil)

	items, total, err := service.List(context.Background(), RegionListFilter{Search: "E"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "EU", items[0].Name)
}
