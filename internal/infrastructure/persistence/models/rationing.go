package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
)

// RegionModel is the persistence model for rationing.Region
type RegionModel struct {
	BaseModel
	Name            string `gorm:"type:varchar(64);not null;uniqueIndex"`
	DailyLimit      int    `gorm:"not null;default:0"`
	ClosedAccess    bool   `gorm:"not null;default:false"`
	UnlimitedAccess bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RegionModel) TableName() string {
	return "regions"
}

// ToDomain converts the persistence model to a domain Region
func (m *RegionModel) ToDomain() *rationing.Region {
	return &rationing.Region{
		BaseEntity:      m.BaseModel.ToDomain(),
		Name:            m.Name,
		DailyLimit:      m.DailyLimit,
		ClosedAccess:    m.ClosedAccess,
		UnlimitedAccess: m.UnlimitedAccess,
	}
}

// RegionModelFromDomain creates a persistence model from a domain Region
func RegionModelFromDomain(r *rationing.Region) *RegionModel {
	m := &RegionModel{
		Name:            r.Name,
		DailyLimit:      r.DailyLimit,
		ClosedAccess:    r.ClosedAccess,
		UnlimitedAccess: r.UnlimitedAccess,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// GlobalLimitModel is the persistence model for rationing.GlobalLimit.
// Singleton is always true and unique, so the table holds at most one row.
type GlobalLimitModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Singleton  bool      `gorm:"not null;default:true;uniqueIndex:uq_global_limits_singleton"`
	DailyLimit int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (GlobalLimitModel) TableName() string {
	return "global_limits"
}

// ToDomain converts the persistence model to a domain GlobalLimit
func (m *GlobalLimitModel) ToDomain() *rationing.GlobalLimit {
	return &rationing.GlobalLimit{
		ID:         m.ID,
		DailyLimit: m.DailyLimit,
		CreatedAt:  m.CreatedAt,
	}
}

// GlobalLimitModelFromDomain creates a persistence model from a domain GlobalLimit
func GlobalLimitModelFromDomain(g *rationing.GlobalLimit) *GlobalLimitModel {
	return &GlobalLimitModel{
		ID:         g.ID,
		Singleton:  true,
		DailyLimit: g.DailyLimit,
		CreatedAt:  g.CreatedAt,
	}
}

// SaleDayModel is the per-day row locked by order placement
type SaleDayModel struct {
	SaleDay   rationing.Day `gorm:"type:date;primaryKey"`
	CreatedAt time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleDayModel) TableName() string {
	return "sale_days"
}
