package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCurrentDeliveryQueryIsNotConstructed = errors.New(
	"GetCurrentDeliveryQuery must be created via NewGetCurrentDeliveryQuery constructor",
)

// GetCurrentDeliveryQuery retrieves the delivery a partner is currently
// working on, if any.
type GetCurrentDeliveryQuery struct {
	partnerID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewGetCurrentDeliveryQuery validates the inputs and builds the query.
func NewGetCurrentDeliveryQuery(partnerID kernel.UUID) (GetCurrentDeliveryQuery, error) {
	if err := partnerID.Validate(); err != nil {
		return GetCurrentDeliveryQuery{}, err
	}

	return GetCurrentDeliveryQuery{
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// PartnerID returns the requesting partner's ID.
func (q GetCurrentDeliveryQuery) PartnerID() kernel.UUID {
	return q.partnerID
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentDeliveryQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentDeliveryQueryIsNotConstructed)
}
