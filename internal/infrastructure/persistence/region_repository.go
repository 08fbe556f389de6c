package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const likeEscape = " ESCAPE '\\'"

// GormRegionRepository implements rationing.RegionRepository using GORM
type GormRegionRepository struct {
	db *gorm.DB
}

// NewGormRegionRepository creates a new GormRegionRepository
func NewGormRegionRepository(db *gorm.DB) *GormRegionRepository {
	return &GormRegionRepository{db: db}
}

// FindByID finds a region by its ID
func (r *GormRegionRepository) FindByID(ctx context.Context, id uuid.UUID) (*rationing.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a region by its unique name
func (r *GormRegionRepository) FindByName(ctx context.Context, name string) (*rationing.Region, error) {
	var model models.RegionModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists regions matching the filter's name search
func (r *GormRegionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]rationing.Region, error) {
	var rows []models.RegionModel
	query := applyPaging(r.filtered(ctx, filter), filter, RegionSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	regions := make([]rationing.Region, len(rows))
	for i := range rows {
		regions[i] = *rows[i].ToDomain()
	}
	return regions, nil
}

// Count counts regions matching the filter's name search
func (r *GormRegionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

// ExistsByName checks whether a region name is taken
func (r *GormRegionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.RegionModel{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

// Save creates or updates a region
func (r *GormRegionRepository) Save(ctx context.Context, region *rationing.Region) error {
	if err := r.db.WithContext(ctx).Save(models.RegionModelFromDomain(region)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return rationing.ErrRegionNameExists
		}
		return err
	}
	return nil
}

// Delete removes a region
func (r *GormRegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RegionModel{}, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
			return rationing.ErrRegionInUse
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// IsReferenced reports whether any cart or order points at the region
func (r *GormRegionRepository) IsReferenced(ctx context.Context, id uuid.UUID) (bool, error) {
	var carts, orders int64
	if err := r.db.WithContext(ctx).Model(&models.CartModel{}).Where("region_id = ?", id).Count(&carts).Error; err != nil {
		return false, err
	}
	if carts > 0 {
		return true, nil
	}
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("region_id = ?", id).Count(&orders).Error; err != nil {
		return false, err
	}
	return orders > 0, nil
}

func (r *GormRegionRepository) filtered(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.RegionModel{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?"+likeEscape, searchPattern(filter.Search))
	}
	return query
}

// Ensure GormRegionRepository implements RegionRepository
var _ rationing.RegionRepository = (*GormRegionRepository)(nil)
