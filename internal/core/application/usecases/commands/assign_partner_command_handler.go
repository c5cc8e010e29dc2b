package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// AssignPartnerCommandHandler performs the assignment transaction: the
// order acquires its partner and the partner leaves the available pool in
// a single commit. A lost race on the partner's availability surfaces as
// PartnerUnavailable (claimed before our check) or Conflict (claimed
// between our check and our commit); it never results in a double booking.
type AssignPartnerCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewAssignPartnerCommandHandler creates a handler for partner assignment.
func NewAssignPartnerCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) AssignPartnerCommandHandler {
	return AssignPartnerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the assignment.
//
// Failure modes, in check order: NotFound (order or partner missing),
// Unauthorized (actor is not the order's restaurant), InvalidState (order
// already assigned or not in PREP), PartnerUnavailable (partner busy),
// Conflict (a concurrent writer won the conditional update).
//
// After a successful commit it publishes ORDER_ASSIGNED on orders,
// PARTNER_AVAILABILITY_CHANGED on partners, and a NOTIFICATION addressed
// to the partner.
func (h AssignPartnerCommandHandler) Handle(ctx context.Context, cmd AssignPartnerCommand) (ports.OrderSnapshot, error) {
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

	if !theOrder.RestaurantID().IsEqual(cmd.ActorID()) {
		return ports.OrderSnapshot{}, errs.NewUnauthorizedError(
			cmd.ActorID().String(), "only the order's restaurant can assign a partner")
	}

	thePartner, err := uow.PartnerRepository().Get(ctx, cmd.PartnerID())
	if err != nil {
		return ports.OrderSnapshot{}, err
	}

	now := h.clock.Now()
	if err = theOrder.AssignPartner(cmd.PartnerID(), now); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = thePartner.MarkBusy(); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = uow.OrderRepository().Update(ctx, theOrder); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = uow.PartnerRepository().Update(ctx, thePartner); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.OrderSnapshot{}, err
	}

	orderSnapshot := ports.NewOrderSnapshot(theOrder)
	h.publisher.Publish(ctx, ports.ChannelOrders, ports.Event{
		Type:       ports.EventOrderAssigned,
		Payload:    orderSnapshot,
		OccurredAt: now,
	})
	h.publisher.Publish(ctx, ports.ChannelPartners, ports.Event{
		Type:       ports.EventPartnerAvailabilityChanged,
		Payload:    ports.NewPartnerSnapshot(thePartner),
		OccurredAt: now,
	})
	h.publisher.Publish(ctx, ports.ChannelNotifications, ports.Event{
		Type: ports.EventNotification,
		Payload: ports.NotificationPayload{
			RecipientID: thePartner.ID().String(),
			Message:     fmt.Sprintf("New delivery assigned: order %s", theOrder.ID()),
		},
		OccurredAt: now,
	})

	return orderSnapshot, nil
}
