package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// UpdateLocationCommandHandler persists a partner's reported position and
// fans it out on the partners channel so trackers see movement live.
type UpdateLocationCommandHandler struct {
	uowFactory PartnerUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewUpdateLocationCommandHandler creates a handler for location reports.
func NewUpdateLocationCommandHandler(
	uowFactory PartnerUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle processes the report.
//
// Failure modes: NotFound (partner missing), Conflict (lost a concurrent
// race). After commit it publishes PARTNER_LOCATION_CHANGED on partners.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) (ports.PartnerSnapshot, error) {
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

	if err = thePartner.SetLocation(cmd.Location()); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	if err = uow.PartnerRepository().Update(ctx, thePartner); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	snapshot := ports.NewPartnerSnapshot(thePartner)
	h.publisher.Publish(ctx, ports.ChannelPartners, ports.Event{
		Type:       ports.EventPartnerLocationChanged,
		Payload:    snapshot,
		OccurredAt: h.clock.Now(),
	})

	return snapshot, nil
}
