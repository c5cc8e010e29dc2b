package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand records a partner's current position. Partners
// may only report their own position.
type UpdateLocationCommand struct {
	actor    kernel.Actor
	location kernel.GeoPoint
	guard    guard.ConstructorGuard
}

// NewUpdateLocationCommand validates the inputs and builds the command.
// Fails with Unauthorized when the actor is not a delivery partner and
// with a Validation error for an out-of-range location.
func NewUpdateLocationCommand(actor kernel.Actor, location kernel.GeoPoint) (UpdateLocationCommand, error) {
	if err := actor.Role.Validate(); err != nil {
		return UpdateLocationCommand{}, err
	}
	if actor.Role != kernel.RoleDeliveryPartner {
		return UpdateLocationCommand{}, errs.NewUnauthorizedError(
			actor.ID.String(), "only a delivery partner can report a location")
	}
	if err := actor.ID.Validate(); err != nil {
		return UpdateLocationCommand{}, err
	}
	if err := location.Validate(); err != nil {
		return UpdateLocationCommand{}, err
	}

	return UpdateLocationCommand{
		actor:    actor,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the acting delivery partner's identity.
func (c *UpdateLocationCommand) Actor() kernel.Actor {
	return c.actor
}

// Location returns the reported position.
func (c *UpdateLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

// Validate checks that the command was created through the constructor.
func (c *UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}
