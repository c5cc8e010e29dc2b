package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrListAvailablePartnersQueryIsNotConstructed = errors.New(
	"ListAvailablePartnersQuery must be created via NewListAvailablePartnersQuery constructor",
)

// ListAvailablePartnersQuery retrieves all partners currently open for
// assignment. Restaurants use it to pick a partner for a PREP order.
type ListAvailablePartnersQuery struct {
	guard guard.ConstructorGuard
}

// NewListAvailablePartnersQuery creates the parameterless query.
func NewListAvailablePartnersQuery() ListAvailablePartnersQuery {
	return ListAvailablePartnersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAvailablePartnersQuery) Validate() error {
	return q.guard.Validate(ErrListAvailablePartnersQueryIsNotConstructed)
}
