package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements shop.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByIDForUser finds a cart owned by the user, with items
func (r *GormCartRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shop.Cart, error) {
	var model models.CartModel
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

// FindOpenForUser finds the user's open cart for a region, with items
func (r *GormCartRepository) FindOpenForUser(ctx context.Context, userID, regionID uuid.UUID) (*shop.Cart, error) {
	var model models.CartModel
	if err := r.withItems(ctx).
		Where("user_id = ? AND region_id = ? AND status = ?", userID, regionID, shop.CartStatusOpen).
		Order("created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForUser lists the user's carts, with items
func (r *GormCartRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shop.Cart, error) {
	var rows []models.CartModel
	query := applyPaging(r.filtered(r.withItems(ctx), userID, filter), filter, CartSortFields)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	carts := make([]shop.Cart, len(rows))
	for i := range rows {
		carts[i] = *rows[i].ToDomain()
	}
	return carts, nil
}

// CountForUser counts the user's carts matching the filter
func (r *GormCartRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filtered(r.db.WithContext(ctx).Model(&models.CartModel{}), userID, filter).Count(&count).Error
	return count, err
}

// Save inserts a new cart or touches an existing open one, then inserts items
// that are not stored yet. Items are append-only. Saving a cart that was closed
// in the meantime fails with shop.ErrCartClosed and writes nothing.
func (r *GormCartRepository) Save(ctx context.Context, cart *shop.Cart) error {
	model := models.CartModelFromDomain(cart)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created := tx.Omit("Items").Clauses(clause.OnConflict{DoNothing: true}).Create(model)
		if created.Error != nil {
			return created.Error
		}
		if created.RowsAffected == 0 {
			touched := tx.Model(&models.CartModel{}).
				Where("id = ? AND status = ?", cart.ID, shop.CartStatusOpen).
				Updates(map[string]interface{}{
					"updated_at": cart.UpdatedAt,
					"version":    gorm.Expr("version + 1"),
				})
			if touched.Error != nil {
				return touched.Error
			}
			if touched.RowsAffected == 0 {
				return shop.ErrCartClosed
			}
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Items).Error
	})
}

// UpdateStatus writes the cart's status with an optimistic version check
func (r *GormCartRepository) UpdateStatus(ctx context.Context, cart *shop.Cart) error {
	result := r.db.WithContext(ctx).
		Model(&models.CartModel{}).
		Where("id = ? AND version = ?", cart.ID, cart.Version-1).
		Updates(map[string]interface{}{
			"status":     cart.Status,
			"closed_at":  cart.ClosedAt,
			"version":    cart.Version,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteForUser deletes a cart owned by the user together with its items
func (r *GormCartRepository) DeleteForUser(ctx context.Context, userID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.CartModel{}).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.CartModel{}).Error
	})
}

func (r *GormCartRepository) filtered(query *gorm.DB, userID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("user_id = ?", userID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	return query
}

func (r *GormCartRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.position ASC")
	})
}

// Ensure GormCartRepository implements CartRepository
var _ shop.CartRepository = (*GormCartRepository)(nil)
