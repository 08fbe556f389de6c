package persistence

import (
	"context"
	"errors"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGlobalLimitRepository stores the singleton global limit
type GormGlobalLimitRepository struct {
	db *gorm.DB
}

// NewGormGlobalLimitRepository creates a new GormGlobalLimitRepository
func NewGormGlobalLimitRepository(db *gorm.DB) *GormGlobalLimitRepository {
	return &GormGlobalLimitRepository{db: db}
}

// Current returns the configured limit, or shared.ErrNotFound when none is set
func (r *GormGlobalLimitRepository) Current(ctx context.Context) (*rationing.GlobalLimit, error) {
	var model models.GlobalLimitModel
	if err := r.db.WithContext(ctx).Where("singleton = ?", true).Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Replace upserts limit on the singleton key. Concurrent callers serialize
// on the unique index and the last writer wins.
func (r *GormGlobalLimitRepository) Replace(ctx context.Context, limit *rationing.GlobalLimit) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "singleton"}},
			DoUpdates: clause.AssignmentColumns([]string{"id", "daily_limit", "created_at"}),
		}).
		Create(models.GlobalLimitModelFromDomain(limit)).Error
}

// Ensure GormGlobalLimitRepository implements GlobalLimitRepository
var _ rationing.GlobalLimitRepository = (*GormGlobalLimitRepository)(nil)
