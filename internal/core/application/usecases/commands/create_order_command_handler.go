package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler creates orders and announces them on the
// orders channel.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle persists a new order in PREP status with no partner and, after
// the commit, publishes ORDER_CREATED with the order snapshot.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (ports.OrderSnapshot, error) {
	if err := cmd.Validate(); err != nil {
		return ports.OrderSnapshot{}, err
	}

	now := h.clock.Now()
	newOrder, err := order.NewOrder(
		kernel.NewUUID(),
		cmd.Actor().ID,
		cmd.Items(),
		cmd.PrepTime(),
		cmd.CustomerLocation(),
		now,
	)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ports.OrderSnapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return ports.OrderSnapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.OrderSnapshot{}, err
	}

	snapshot := ports.NewOrderSnapshot(newOrder)
	h.publisher.Publish(ctx, ports.ChannelOrders, ports.Event{
		Type:       ports.EventOrderCreated,
		Payload:    snapshot,
		OccurredAt: now,
	})

	return snapshot, nil
}
