package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormUsageCounter counts sold units straight from order_items.
// Bound to a transaction handle it sees that transaction's uncommitted orders.
type GormUsageCounter struct {
	db *gorm.DB
}

// NewGormUsageCounter creates a new GormUsageCounter
func NewGormUsageCounter(db *gorm.DB) *GormUsageCounter {
	return &GormUsageCounter{db: db}
}

// GlobalUsage counts order items of all orders placed on day
func (c *GormUsageCounter) GlobalUsage(ctx context.Context, day rationing.Day) (int64, error) {
	var count int64
	err := c.itemsOn(ctx, day).Count(&count).Error
	return count, err
}

// RegionUsage counts order items of the region's orders placed on day
func (c *GormUsageCounter) RegionUsage(ctx context.Context, regionID uuid.UUID, day rationing.Day) (int64, error) {
	var count int64
	err := c.itemsOn(ctx, day).Where("orders.region_id = ?", regionID).Count(&count).Error
	return count, err
}

// UsageByRegion counts order items per region for day. Regions without sales are absent.
func (c *GormUsageCounter) UsageByRegion(ctx context.Context, day rationing.Day) (map[uuid.UUID]int64, error) {
	var rows []struct {
		RegionID uuid.UUID
		Units    int64
	}
	err := c.itemsOn(ctx, day).
		Select("orders.region_id AS region_id, COUNT(order_items.id) AS units").
		Group("orders.region_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	usage := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		usage[row.RegionID] = row.Units
	}
	return usage, nil
}

func (c *GormUsageCounter) itemsOn(ctx context.Context, day rationing.Day) *gorm.DB {
	return c.db.WithContext(ctx).
		Model(&models.OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.sale_day = ?", day)
}

// Ensure GormUsageCounter implements UsageCounter
var _ rationing.UsageCounter = (*GormUsageCounter)(nil)
