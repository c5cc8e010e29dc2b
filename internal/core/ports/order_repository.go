// Package ports defines the contracts between the dispatch core and its
// infrastructure adapters: persistence with conditional writes, and the
// event publishing surface.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes conditionally on the aggregate's loaded
	// version. Returns a ConflictError (errs.ErrConflict) when the stored
	// version no longer matches, i.e. a concurrent mutation won the race.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier. Returns an ObjectNotFoundError
	// (errs.ErrObjectNotFound) when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActiveByPartner retrieves the partner's non-terminal assigned
	// order, if any. Used to guard availability toggles: a partner with an
	// active order must not go back to available.
	// Returns an ObjectNotFoundError when the partner has no active order.
	GetActiveByPartner(ctx context.Context, partnerID kernel.UUID) (*order.Order, error)
}
