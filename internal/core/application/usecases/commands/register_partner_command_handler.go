package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
)

// RegisterPartnerCommandHandler enrolls new delivery partners.
type RegisterPartnerCommandHandler struct {
	uowFactory PartnerUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewRegisterPartnerCommandHandler creates a handler for partner enrollment.
func NewRegisterPartnerCommandHandler(
	uowFactory PartnerUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) RegisterPartnerCommandHandler {
	return RegisterPartnerCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle enrolls the partner and publishes PARTNER_AVAILABILITY_CHANGED on
// partners so dashboards pick up the new available partner.
func (h RegisterPartnerCommandHandler) Handle(ctx context.Context, cmd RegisterPartnerCommand) (ports.PartnerSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	thePartner, err := partner.NewPartner(kernel.NewUUID(), cmd.Name())
	if err != nil {
		return ports.PartnerSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ports.PartnerSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PartnerRepository().Add(ctx, thePartner); err != nil {
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
