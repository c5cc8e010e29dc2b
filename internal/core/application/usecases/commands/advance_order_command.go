package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New(
	"AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor",
)

// AdvanceOrderCommand requests moving an order one step forward in the
// lifecycle sequence. Permitted for the order's restaurant or its
// assigned partner.
type AdvanceOrderCommand struct {
	orderID      kernel.UUID
	actorID      kernel.UUID
	targetStatus order.Status
	guard        guard.ConstructorGuard
}

// NewAdvanceOrderCommand validates the inputs and builds the command.
// The target status must be one of the lifecycle values; whether it is
// the legal next step is decided against the order's current state by the
// handler.
func NewAdvanceOrderCommand(orderID, actorID kernel.UUID, targetStatus order.Status) (AdvanceOrderCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		actorID.Validate(),
		targetStatus.Validate(),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return AdvanceOrderCommand{
		orderID:      orderID,
		actorID:      actorID,
		targetStatus: targetStatus,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to advance.
func (c *AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the acting identity.
func (c *AdvanceOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// TargetStatus returns the requested status.
func (c *AdvanceOrderCommand) TargetStatus() order.Status {
	return c.targetStatus
}

// Validate ensures the command was created through the constructor.
func (c *AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}
