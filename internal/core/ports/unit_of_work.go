package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per operation, keeping
// concurrent operations isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a single dispatch operation.
// The order and partner rows touched by assignment and release commit
// through a single unit of work, so both mutations land together or
// neither does.
type UnitOfWork interface {
	// Begin starts the underlying transaction.
	Begin(ctx context.Context) error

	// Commit commits the transaction. Returns an error if no transaction
	// is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback discards the transaction. Safe to call after Commit as a
	// deferred cleanup; it is a no-op once the transaction is closed.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the transaction.
	OrderRepository() OrderRepository

	// PartnerRepository returns a PartnerRepository bound to the transaction.
	PartnerRepository() PartnerRepository
}
