package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the orders visible to an actor: a restaurant
// manager sees the orders of their restaurant, a delivery partner sees the
// orders assigned to them.
type ListOrdersQuery struct {
	actor kernel.Actor
	guard guard.ConstructorGuard
}

// NewListOrdersQuery validates the inputs and builds the query.
func NewListOrdersQuery(actor kernel.Actor) (ListOrdersQuery, error) {
	if err := actor.ID.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	if err := actor.Role.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		actor: actor,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the requesting identity.
func (q ListOrdersQuery) Actor() kernel.Actor {
	return q.actor
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}
