// Package dispatch exposes the engine's operations behind one facade.
// Transport adapters call the facade instead of individual handlers, so
// header parsing, JSON mapping and use case wiring stay decoupled.
package dispatch

import (
	"context"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Facade bundles every command and query handler of the engine.
type Facade struct {
	createOrder     commands.CreateOrderCommandHandler
	assignPartner   commands.AssignPartnerCommandHandler
	advanceOrder    commands.AdvanceOrderCommandHandler
	setAvailability commands.SetAvailabilityCommandHandler
	updateLocation  commands.UpdateLocationCommandHandler
	registerPartner commands.RegisterPartnerCommandHandler

	getOrder              queries.GetOrderQueryHandler
	listOrders            queries.ListOrdersQueryHandler
	listAvailablePartners queries.ListAvailablePartnersQueryHandler
	getCurrentDelivery    queries.GetCurrentDeliveryQueryHandler
}

// NewFacade assembles the facade from pre-built handlers.
func NewFacade(
	createOrder commands.CreateOrderCommandHandler,
	assignPartner commands.AssignPartnerCommandHandler,
	advanceOrder commands.AdvanceOrderCommandHandler,
	setAvailability commands.SetAvailabilityCommandHandler,
	updateLocation commands.UpdateLocationCommandHandler,
	registerPartner commands.RegisterPartnerCommandHandler,
	getOrder queries.GetOrderQueryHandler,
	listOrders queries.ListOrdersQueryHandler,
	listAvailablePartners queries.ListAvailablePartnersQueryHandler,
	getCurrentDelivery queries.GetCurrentDeliveryQueryHandler,
) *Facade {
	return &Facade{
		createOrder:           createOrder,
		assignPartner:         assignPartner,
		advanceOrder:          advanceOrder,
		setAvailability:       setAvailability,
		updateLocation:        updateLocation,
		registerPartner:       registerPartner,
		getOrder:              getOrder,
		listOrders:            listOrders,
		listAvailablePartners: listAvailablePartners,
		getCurrentDelivery:    getCurrentDelivery,
	}
}

// CreateOrder creates a PREP order owned by the acting restaurant.
func (f *Facade) CreateOrder(
	ctx context.Context,
	actor kernel.Actor,
	items string,
	prepTime int,
	customerLocation kernel.GeoPoint,
) (ports.OrderSnapshot, error) {
	cmd, err := commands.NewCreateOrderCommand(actor, items, prepTime, customerLocation)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	return f.createOrder.Handle(ctx, cmd)
}

// AssignPartner books an available partner onto a PREP order.
func (f *Facade) AssignPartner(
	ctx context.Context,
	orderID, actorID, partnerID kernel.UUID,
) (ports.OrderSnapshot, error) {
	cmd, err := commands.NewAssignPartnerCommand(orderID, actorID, partnerID)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	return f.assignPartner.Handle(ctx, cmd)
}

// AdvanceStatus moves an order to the next lifecycle status.
func (f *Facade) AdvanceStatus(
	ctx context.Context,
	orderID, actorID kernel.UUID,
	target order.Status,
) (ports.OrderSnapshot, error) {
	cmd, err := commands.NewAdvanceOrderCommand(orderID, actorID, target)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	return f.advanceOrder.Handle(ctx, cmd)
}

// SetPartnerAvailability toggles the acting partner's availability.
func (f *Facade) SetPartnerAvailability(
	ctx context.Context,
	actor kernel.Actor,
	isAvailable bool,
) (ports.PartnerSnapshot, error) {
	cmd, err := commands.NewSetAvailabilityCommand(actor, isAvailable)
	if err != nil {
		return ports.PartnerSnapshot{}, err
	}
	return f.setAvailability.Handle(ctx, cmd)
}

// UpdateLocation records the acting partner's current position.
func (f *Facade) UpdateLocation(
	ctx context.Context,
	actor kernel.Actor,
	location kernel.GeoPoint,
) (ports.PartnerSnapshot, error) {
	cmd, err := commands.NewUpdateLocationCommand(actor, location)
	if err != nil {
		return ports.PartnerSnapshot{}, err
	}
	return f.updateLocation.Handle(ctx, cmd)
}

// RegisterPartner enrolls a new delivery partner.
func (f *Facade) RegisterPartner(ctx context.Context, name string) (ports.PartnerSnapshot, error) {
	cmd, err := commands.NewRegisterPartnerCommand(name)
	if err != nil {
		return ports.PartnerSnapshot{}, err
	}
	return f.registerPartner.Handle(ctx, cmd)
}

// GetOrder reads one order on behalf of an actor.
func (f *Facade) GetOrder(ctx context.Context, orderID, actorID kernel.UUID) (ports.OrderSnapshot, error) {
	query, err := queries.NewGetOrderQuery(orderID, actorID)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	return f.getOrder.Handle(ctx, query)
}

// ListOrders lists the orders visible to the actor, newest first.
func (f *Facade) ListOrders(ctx context.Context, actor kernel.Actor) ([]ports.OrderSnapshot, error) {
	query, err := queries.NewListOrdersQuery(actor)
	if err != nil {
		return nil, err
	}
	return f.listOrders.Handle(ctx, query)
}

// ListAvailablePartners lists the partners open for assignment.
func (f *Facade) ListAvailablePartners(ctx context.Context) ([]ports.PartnerSnapshot, error) {
	return f.listAvailablePartners.Handle(ctx, queries.NewListAvailablePartnersQuery())
}

// GetCurrentDelivery reads the partner's delivery in progress.
func (f *Facade) GetCurrentDelivery(ctx context.Context, partnerID kernel.UUID) (ports.OrderSnapshot, error) {
	query, err := queries.NewGetCurrentDeliveryQuery(partnerID)
	if err != nil {
		return ports.OrderSnapshot{}, err
	}
	return f.getCurrentDelivery.Handle(ctx, query)
}
