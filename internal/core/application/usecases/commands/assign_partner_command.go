package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignPartnerCommandIsNotConstructed = errors.New(
	"AssignPartnerCommand must be created via NewAssignPartnerCommand constructor",
)

// AssignPartnerCommand requests the one-time association of an available
// delivery partner with a PREP order. Only the order's restaurant may
// assign, and the partner's availability is claimed under a serialized
// check-and-set, so two racing assignments on the same partner resolve to
// exactly one success.
type AssignPartnerCommand struct {
	orderID   kernel.UUID
	actorID   kernel.UUID
	partnerID kernel.UUID
	guard     guard.ConstructorGuard
}

// NewAssignPartnerCommand validates the identifiers and builds the command.
func NewAssignPartnerCommand(orderID, actorID, partnerID kernel.UUID) (AssignPartnerCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		partnerID.Validate(),
	); err != nil {
		return AssignPartnerCommand{}, err
	}

	return AssignPartnerCommand{
		orderID:   orderID,
		actorID:   actorID,
		partnerID: partnerID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to assign.
func (c *AssignPartnerCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting restaurant's identifier.
func (c *AssignPartnerCommand) ActorID() kernel.UUID {
	return c.actorID
}

// PartnerID returns the partner chosen by the restaurant.
func (c *AssignPartnerCommand) PartnerID() kernel.UUID {
	return c.partnerID
}

// Validate ensures the command was created through the constructor.
func (c *AssignPartnerCommand) Validate() error {
	return c.guard.Validate(ErrAssignPartnerCommandIsNotConstructed)
}
