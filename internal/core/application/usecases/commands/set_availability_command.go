package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New(
	"SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor",
)

// SetAvailabilityCommand toggles a partner's availability flag. Partners
// may only change their own flag, so the actor and the target partner are
// the same identity.
type SetAvailabilityCommand struct {
	actor       kernel.Actor
	isAvailable bool
	guard       guard.ConstructorGuard
}

// NewSetAvailabilityCommand validates the inputs and builds the command.
// Fails with Unauthorized when the actor is not a delivery partner.
func NewSetAvailabilityCommand(actor kernel.Actor, isAvailable bool) (SetAvailabilityCommand, error) {
	if err := actor.Role.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}
	if actor.Role != kernel.RoleDeliveryPartner {
		return SetAvailabilityCommand{}, errs.NewUnauthorizedError(
			actor.ID.String(), "only a delivery partner can change availability")
	}
	if err := actor.ID.Validate(); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return SetAvailabilityCommand{
		actor:       actor,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting delivery partner's identity.
func (c *SetAvailabilityCommand) Actor() kernel.Actor {
	return c.actor
}

// IsAvailable returns the requested availability state.
func (c *SetAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}

// Validate checks that the command was created through the constructor.
func (c *SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}
