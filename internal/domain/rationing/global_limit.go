package rationing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/shared"
)

// GlobalLimit is the system-wide daily cap on units sold.
// At most one exists; storing a new one replaces all previous ones.
type GlobalLimit struct {
	ID         uuid.UUID
	DailyLimit int
	CreatedAt  time.Time
}

// NewGlobalLimit creates a global limit; the cap must be at least 1
func NewGlobalLimit(dailyLimit int) (*GlobalLimit, error) {
	if dailyLimit < 1 {
		return nil, shared.NewDomainError(CodeInvalidGlobalLimit, "Global daily limit must be at least 1")
	}
	return &GlobalLimit{
		ID:         uuid.New(),
		DailyLimit: dailyLimit,
		CreatedAt:  time.Now(),
	}, nil
}

// CheckUsage applies the global cap to usage that already includes the new items
func (g *GlobalLimit) CheckUsage(usage int64) error {
	if usage > int64(g.DailyLimit) {
		return ErrGlobalLimitExceeded
	}
	return nil
}

// Remaining returns how many more units can be sold today, never negative
func (g *GlobalLimit) Remaining(usage int64) int64 {
	left := int64(g.DailyLimit) - usage
	if left < 0 {
		return 0
	}
	return left
}
