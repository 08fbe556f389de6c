package rationing

import (
	"strings"
	"time"
	"unicode"

	"github.com/rationshop/backend/internal/domain/shared"
)

// MaxRegionNameLength is the longest accepted region name
const MaxRegionNameLength = 64

// Region is a market with its own daily cap and access policy.
// A region is never closed and unlimited at the same time.
type Region struct {
	shared.BaseEntity
	Name            string
	DailyLimit      int
	ClosedAccess    bool
	UnlimitedAccess bool
}

// NewRegion creates a new region after validating its policy
func NewRegion(name string, dailyLimit int, closedAccess, unlimitedAccess bool) (*Region, error) {
	name = strings.TrimSpace(name)
	if !ValidRegionName(name) {
		return nil, shared.NewDomainError(CodeInvalidRegionName, "Region name must be 1-64 printable characters")
	}
	if err := validatePolicy(dailyLimit, closedAccess, unlimitedAccess); err != nil {
		return nil, err
	}

	return &Region{
		BaseEntity:      shared.NewBaseEntity(),
		Name:            name,
		DailyLimit:      dailyLimit,
		ClosedAccess:    closedAccess,
		UnlimitedAccess: unlimitedAccess,
	}, nil
}

// Update changes the region's cap and access flags
func (r *Region) Update(dailyLimit int, closedAccess, unlimitedAccess bool) error {
	if err := validatePolicy(dailyLimit, closedAccess, unlimitedAccess); err != nil {
		return err
	}
	r.DailyLimit = dailyLimit
	r.ClosedAccess = closedAccess
	r.UnlimitedAccess = unlimitedAccess
	r.Touch(time.Now())
	return nil
}

// Rename changes the region's display name
func (r *Region) Rename(name string) error {
	name = strings.TrimSpace(name)
	if !ValidRegionName(name) {
		return shared.NewDomainError(CodeInvalidRegionName, "Region name must be 1-64 printable characters")
	}
	r.Name = name
	r.Touch(time.Now())
	return nil
}

// RequiresUsageCount reports whether placing an order needs today's regional usage.
// Unlimited regions skip the regional check and closed regions reject without counting.
func (r *Region) RequiresUsageCount() bool {
	return !r.UnlimitedAccess && !r.ClosedAccess
}

// CheckUsage applies the regional cap to usage that already includes the new items.
// Reaching the cap exactly is allowed.
func (r *Region) CheckUsage(usage int64) error {
	if r.UnlimitedAccess {
		return nil
	}
	if r.ClosedAccess || usage > int64(r.DailyLimit) {
		return NewRegionLimitExceeded(r.Name)
	}
	return nil
}

// ValidRegionName reports whether name is acceptable as a region identifier
func ValidRegionName(name string) bool {
	if name == "" || len([]rune(name)) > MaxRegionNameLength {
		return false
	}
	if strings.TrimSpace(name) != name {
		return false
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

func validatePolicy(dailyLimit int, closedAccess, unlimitedAccess bool) error {
	if dailyLimit < 0 {
		return shared.NewDomainError(CodeInvalidRegionLimit, "Region daily limit cannot be negative")
	}
	if closedAccess && unlimitedAccess {
		return ErrRegionAccessConflict
	}
	return nil
}
