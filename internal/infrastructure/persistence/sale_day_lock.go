package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleDayLock serializes order placement per calendar day with a row lock
// on sale_days. It must be bound to a transaction; the lock lasts until commit
// or rollback. Different days use different rows and never contend.
type GormSaleDayLock struct {
	db *gorm.DB
}

// NewGormSaleDayLock creates a lock bound to the given transaction handle
func NewGormSaleDayLock(tx *gorm.DB) *GormSaleDayLock {
	return &GormSaleDayLock{db: tx}
}

// Acquire inserts the day's row if missing, then locks it FOR UPDATE
func (l *GormSaleDayLock) Acquire(ctx context.Context, day rationing.Day) error {
	if day.IsZero() {
		return fmt.Errorf("sale day lock: day is required")
	}

	db := l.db.WithContext(ctx)
	row := models.SaleDayModel{SaleDay: day, CreatedAt: time.Now()}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("sale day lock: upsert %s: %w", day, err)
	}

	var locked models.SaleDayModel
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("sale_day = ?", day).
		Take(&locked).Error; err != nil {
		return fmt.Errorf("sale day lock: lock %s: %w", day, err)
	}
	return nil
}

// Ensure GormSaleDayLock implements SaleDayLock
var _ rationing.SaleDayLock = (*GormSaleDayLock)(nil)
