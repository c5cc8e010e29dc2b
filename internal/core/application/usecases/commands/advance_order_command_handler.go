package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AdvanceOrderCommandHandler applies status transitions. The conditional
// order update serializes racing advances: two simultaneous identical
// transitions resolve to one success and one InvalidTransition or
// Conflict. When the order reaches DELIVERED, the assigned partner is
// released in the same transaction.
type AdvanceOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewAdvanceOrderCommandHandler creates a handler for status transitions.
func NewAdvanceOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the transition.
//
// Failure modes: NotFound (order missing), Unauthorized (actor is neither
// the restaurant nor the assigned partner), InvalidTransition (target is
// not the immediate successor), Conflict (lost a concurrent race).
//
// After commit it publishes ORDER_STATUS_CHANGED on orders, and when the
// partner was released, PARTNER_AVAILABILITY_CHANGED on partners.
func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) (ports.OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return ports.OrderSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.OrderSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	theOrder, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return ports.OrderSnapshot{}, err
	}

	if !theOrder.IsAccessibleBy(cmd.ActorID()) {
		return ports.OrderSnapshot{}, errs.NewUnauthorizedError(
			cmd.ActorID().String(), "actor is neither the restaurant nor the assigned partner")
	}

	now := h.clock.Now()
	if err = theOrder.Advance(cmd.TargetStatus(), now); err != nil {
		return ports.OrderSnapshot{}, err
	}

	var releasedPartner *partner.Partner
	if theOrder.Status() == order.Delivered && theOrder.DeliveryPartner() != nil {
		releasedPartner, err = uow.PartnerRepository().Get(ctx, *theOrder.DeliveryPartner())
		if err != nil {
			return ports.OrderSnapshot{}, err
		}

		releasedPartner.MarkAvailable()
		if err = uow.PartnerRepository().Update(ctx, releasedPartner); err != nil {
			return ports.OrderSnapshot{}, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.OrderSnapshot{}, err
	}

	orderSnapshot := ports.NewOrderSnapshot(theOrder)
	h.publisher.Publish(ctx, ports.ChannelOrders, ports.Event{
		Type:       ports.EventOrderStatusChanged,
		Payload:    orderSnapshot,
		OccurredAt: now,
	})

	if releasedPartner != nil {
		h.publisher.Publish(ctx, ports.ChannelPartners, ports.Event{
			Type:       ports.EventPartnerAvailabilityChanged,
			Payload:    ports.NewPartnerSnapshot(releasedPartner),
			OccurredAt: now,
		})
	}

	return orderSnapshot, nil
}
