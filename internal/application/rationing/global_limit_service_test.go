package rationing

import (
	"context"
	"testing"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGlobalLimitService_Set(t *testing.T) {
	t.Run("replaces the limit", func(t *testing.T) {
		repo := new(MockGlobalLimitRepository)
		service := NewGlobalLimitService(repo, nil)
		repo.On("Replace", mock.Anything, mock.MatchedBy(func(limit *rationing.GlobalLimit) bool {
			return limit.DailyLimit == 500
		})).Return(nil)

		resp, err := service.Set(context.Background(), SetGlobalLimitRequest{DailyLimit: 500})

		require.NoError(t, err)
		assert.Equal(t, 500, resp.DailyLimit)
		repo.AssertExpectations(t)
	})

	t.Run("rejects zero", func(t *testing.T) {
		repo := new(MockGlobalLimitRepository)
		service := NewGlobalLimitService(repo, nil)

		_, err := service.Set(context.Background(), SetGlobalLimitRequest{DailyLimit: 0})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, rationing.CodeInvalidGlobalLimit, domainErr.Code)
		repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})
}

func TestGlobalLimitService_Get(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		repo := new(MockGlobalLimitRepository)
		service := NewGlobalLimitService(repo, nil)
		repo.On("Current", mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := service.Get(context.Background())

		assert.ErrorIs(t, err, rationing.ErrGlobalLimitNotSet)
	})

	t.Run("returns current limit", func(t *testing.T) {
		repo := new(MockGlobalLimitRepository)
		service := NewGlobalLimitService(repo, nil)
		limit, err := rationing.NewGlobalLimit(10)
		require.NoError(t, err)
		repo.On("Current", mock.Anything).Return(limit, nil)

		resp, err := service.Get(context.Background())

		require.NoError(t, err)
		assert.Equal(t, limit.ID, resp.ID)
		assert.Equal(t, 10, resp.DailyLimit)
	})
}
