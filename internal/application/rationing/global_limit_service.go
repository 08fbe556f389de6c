package rationing

import (
	"context"
	"errors"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// GlobalLimitService manages the singleton global daily cap
type GlobalLimitService struct {
	limits rationing.GlobalLimitRepository
	logger *zap.Logger
}

// NewGlobalLimitService creates a new GlobalLimitService
func NewGlobalLimitService(limits rationing.GlobalLimitRepository, logger *zap.Logger) *GlobalLimitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GlobalLimitService{limits: limits, logger: logger}
}

// Set stores a new global limit, replacing any previous one
func (s *GlobalLimitService) Set(ctx context.Context, req SetGlobalLimitRequest) (*GlobalLimitResponse, error) {
	limit, err := rationing.NewGlobalLimit(req.DailyLimit)
	if err != nil {
		return nil, err
	}

	if err := s.limits.Replace(ctx, limit); err != nil {
		return nil, err
	}

	s.logger.Info("global limit replaced", zap.Int("daily_limit", limit.DailyLimit))
	response := ToGlobalLimitResponse(limit)
	return &response, nil
}

// Get returns the configured global limit
func (s *GlobalLimitService) Get(ctx context.Context) (*GlobalLimitResponse, error) {
	limit, err := s.limits.Current(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, rationing.ErrGlobalLimitNotSet
		}
		return nil, err
	}
	response := ToGlobalLimitResponse(limit)
	return &response, nil
}
