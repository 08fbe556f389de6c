package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormOrderRepository implements shop.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForUser finds an order owned by the user, with items
func (r *GormOrderRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shop.Order, error) {
	var model models.OrderModel
	if err := r.withItems(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's orders, with items
func (r *GormOrderRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shop.Order, error) {
	var rows []models.OrderModel
	query := applyPaging(r.filtered(r.withItems(ctx), userID, filter), filter, OrderSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	orders := make([]shop.Order, len(rows))
	for i := range rows {
		orders[i] = *rows[i].ToDomain()
	}
	return orders, nil
}

// CountForUser counts the user's orders matching the filter
func (r *GormOrderRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.OrderModel{}), userID, filter).Count(&count).Error
	return count, err
}

// Create inserts a new order and its items
func (r *GormOrderRepository) Create(ctx context.Context, order *shop.Order) error {
	return r.db.WithContext(ctx).Create(models.OrderModelFromDomain(order)).Error
}

// DeleteForUser deletes an order owned by the user together with its items.
// Deleted orders no longer count towards their sale day's usage.
func (r *GormOrderRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.OrderModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.OrderModel{}).Error
	})
}

func (r *GormOrderRepository) filtered(query *gorm.DB, userID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("user_id = ?", userID)
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "region_id":
			query = query.Where("region_id = ?", value)
		case "sale_day":
			query = query.Where("sale_day = ?", value)
		}
	}
	return query
}

func (r *GormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.position ASC")
	})
}

// Ensure GormOrderRepository implements OrderRepository
var _ shop.OrderRepository = (*GormOrderRepository)(nil)
