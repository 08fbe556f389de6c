package shop

import (
	"context"

	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
)

// TransactionScope provides transactional access to the repositories used by order placement.
// When a function is executed within a transaction scope, all repository operations
// will be part of the same database transaction and will be committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// Usage counts read through Usage() include the order written through Orders()
// earlier in the same transaction.
type TransactionalRepositories interface {
	// Carts returns the cart repository scoped to the current transaction
	Carts() shop.CartRepository
	// Orders returns the order repository scoped to the current transaction
	Orders() shop.OrderRepository
	// GlobalLimits returns the global limit repository scoped to the current transaction
	GlobalLimits() rationing.GlobalLimitRepository
	// Usage returns the daily usage counter scoped to the current transaction
	Usage() rationing.UsageCounter
	// DayLock returns the sale day lock scoped to the current transaction
	DayLock() rationing.SaleDayLock
	// Events returns the outbox writer scoped to the current transaction
	Events() shared.EventSaver
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	carts        shop.CartRepository
	orders       shop.OrderRepository
	globalLimits rationing.GlobalLimitRepository
	usage        rationing.UsageCounter
	dayLock      rationing.SaleDayLock
	events       shared.EventSaver
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	carts shop.CartRepository,
	orders shop.OrderRepository,
	globalLimits rationing.GlobalLimitRepository,
	usage rationing.UsageCounter,
	dayLock rationing.SaleDayLock,
	events shared.EventSaver,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		carts:        carts,
		orders:       orders,
		globalLimits: globalLimits,
		usage:        usage,
		dayLock:      dayLock,
		events:       events,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Carts returns the cart repository.
func (s *NoOpTransactionScope) Carts() shop.CartRepository { return s.carts }

// Orders returns the order repository.
func (s *NoOpTransactionScope) Orders() shop.OrderRepository { return s.orders }

// GlobalLimits returns the global limit repository.
func (s *NoOpTransactionScope) GlobalLimits() rationing.GlobalLimitRepository { return s.globalLimits }

// Usage returns the usage counter.
func (s *NoOpTransactionScope) Usage() rationing.UsageCounter { return s.usage }

// DayLock returns the sale day lock.
func (s *NoOpTransactionScope) DayLock() rationing.SaleDayLock { return s.dayLock }

// Events returns the event saver.
func (s *NoOpTransactionScope) Events() shared.EventSaver { return s.events }

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
