package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SetAvailabilityCommandHandler toggles a partner's availability. Going
// available is refused while the partner still has a live delivery; the
// release path for an assigned partner is advancing the order to DELIVERED.
type SetAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewSetAvailabilityCommandHandler creates a handler for availability toggles.
func NewSetAvailabilityCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the toggle.
//
// Failure modes: NotFound (partner missing), InvalidState (going available
// while an active delivery exists), Conflict (lost a concurrent race).
//
// After commit it publishes PARTNER_AVAILABILITY_CHANGED on partners.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAvailabilityCommand) (ports.PartnerSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	thePartner, err := uow.PartnerRepository().Get(ctx, cmd.Actor().ID)
	if err != nil {
		return ports.PartnerSnapshot{}, err
	}

	if cmd.IsAvailable() {
		_, err = uow.OrderRepository().GetActiveByPartner(ctx, thePartner.ID())
		if err == nil {
			return ports.PartnerSnapshot{}, errs.NewInvalidStateError(
				"partner has an active delivery and cannot go available")
		}
		if !errors.Is(err, errs.ErrObjectNotFound) {
			return ports.PartnerSnapshot{}, err
		}

		thePartner.MarkAvailable()
	} else {
		thePartner.GoOffline()
	}

	if err = uow.PartnerRepository().Update(ctx, thePartner); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	snapshot := ports.NewPartnerSnapshot(thePartner)
	h.publisher.Publish(ctx, ports.ChannelPartners, ports.Event{
		Type:       ports.EventPartnerAvailabilityChanged,
		Payload:    snapshot,
		OccurredAt: h.clock.Now(),
	})

	return snapshot, nil
}
