package persistence

import (
	"context"

	appshop "github.com/rationshop/backend/internal/application/shop"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/rationshop/backend/internal/infrastructure/event"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of order placement: the order, the cart status
// change and the outbox entries commit or roll back together.
type GormTransactionScope struct {
	db         *gorm.DB
	serializer *event.EventSerializer
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, serializer *event.EventSerializer) *GormTransactionScope {
	return &GormTransactionScope{db: db, serializer: serializer}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appshop.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx, serializer: s.serializer}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx         *gorm.DB
	serializer *event.EventSerializer
}

func (r *gormTransactionalRepositories) Carts() shop.CartRepository {
	return NewGormCartRepository(r.tx)
}

func (r *gormTransactionalRepositories) Orders() shop.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

func (r *gormTransactionalRepositories) GlobalLimits() rationing.GlobalLimitRepository {
	return NewGormGlobalLimitRepository(r.tx)
}

func (r *gormTransactionalRepositories) Usage() rationing.UsageCounter {
	return NewGormUsageCounter(r.tx)
}

func (r *gormTransactionalRepositories) DayLock() rationing.SaleDayLock {
	return NewGormSaleDayLock(r.tx)
}

// Events returns an outbox writer bound to the transaction
func (r *gormTransactionalRepositories) Events() shared.EventSaver {
	return event.NewOutboxWriter(r.serializer, event.NewGormOutboxRepository(r.tx))
}

// Ensure GormTransactionScope implements TransactionScope
var _ appshop.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appshop.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
