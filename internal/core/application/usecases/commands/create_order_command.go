package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand requests creation of a new order in PREP status.
// Only a restaurant manager may create orders; the acting restaurant
// becomes the immutable owner.
type CreateOrderCommand struct {
	actor            kernel.Actor
	items            string
	prepTime         int
	customerLocation kernel.GeoPoint
	guard            guard.ConstructorGuard
}

// NewCreateOrderCommand validates the inputs and builds the command.
// Fails with a Validation error for empty items, non-positive prepTime,
// or an invalid location, and with Unauthorized when the actor is not a
// restaurant manager.
func NewCreateOrderCommand(
	actor kernel.Actor,
	items string,
	prepTime int,
	customerLocation kernel.GeoPoint,
) (CreateOrderCommand, error) {
	if err := actor.Role.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if actor.Role != kernel.RoleRestaurantManager {
		return CreateOrderCommand{}, errs.NewUnauthorizedError(
			actor.ID.String(), "only a restaurant manager can create orders")
	}
	if err := actor.ID.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}
	if items == "" {
		return CreateOrderCommand{}, errs.NewValueIsRequiredError("items")
	}
	if prepTime <= 0 {
		return CreateOrderCommand{}, errs.NewValueIsInvalidError("prepTime")
	}
	if err := customerLocation.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		actor:            actor,
		items:            items,
		prepTime:         prepTime,
		customerLocation: customerLocation,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Actor returns the creating restaurant's identity.
func (c *CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Items returns the free-text order contents.
func (c *CreateOrderCommand) Items() string {
	return c.items
}

// PrepTime returns the preparation time in minutes.
func (c *CreateOrderCommand) PrepTime() int {
	return c.prepTime
}

// CustomerLocation returns the delivery destination.
func (c *CreateOrderCommand) CustomerLocation() kernel.GeoPoint {
	return c.customerLocation
}

// Validate ensures the command was created through the constructor.
func (c *CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}
