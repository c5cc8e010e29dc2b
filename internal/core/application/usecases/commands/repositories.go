// Package commands contains the write operations of the dispatch engine.
// Each command is a guard-validated value object paired with a handler
// that runs the mutation inside a unit of work and, after a successful
// commit, publishes the resulting snapshot as a domain event. Events are
// published strictly after the commit, so subscribers never observe state
// that is not durably committed.
package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// OrderUoW is the unit of work for commands touching only orders.
type OrderUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
}

// OrderUoWFactory creates an OrderUoW per command execution.
type OrderUoWFactory interface {
	Create() OrderUoW
}

// PartnerUoW is the unit of work for commands touching only partners.
type PartnerUoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	PartnerRepository() ports.PartnerRepository
}

// PartnerUoWFactory creates a PartnerUoW per command execution.
type PartnerUoWFactory interface {
	Create() PartnerUoW
}

// UoW is the unit of work for commands that mutate the (order, partner)
// pair together. Both updates commit or neither does.
type UoW interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	OrderRepository() ports.OrderRepository
	PartnerRepository() ports.PartnerRepository
}

// UoWFactory creates a UoW per command execution.
type UoWFactory interface {
	Create() UoW
}

// Clock supplies wall-clock timestamps. Injected so tests control time.
type Clock interface {
	Now() time.Time
}
