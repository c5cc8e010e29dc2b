package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignFixture struct {
	restaurantID kernel.UUID
	order        *order.Order
	partner      *partner.Partner
	cmd          commands.AssignPartnerCommand
}

func newAssignFixture(t *testing.T) assignFixture {
	t.Helper()

	restaurantID := kernel.NewUUID()
	location, err := kernel.NewGeoPoint(40.71, -74.0, "1 Main St")
	require.NoError(t, err)

	testOrder, err := order.NewOrder(kernel.NewUUID(), restaurantID, "2x Margherita", 20, location, testClock().Now())
	require.NoError(t, err)

	testPartner, err := partner.NewPartner(kernel.NewUUID(), "Alex Rider")
	require.NoError(t, err)

	cmd, err := commands.NewAssignPartnerCommand(testOrder.ID(), restaurantID, testPartner.ID())
	require.NoError(t, err)

	return assignFixture{
		restaurantID: restaurantID,
		order:        testOrder,
		partner:      testPartner,
		cmd:          cmd,
	}
}

func TestAssignPartnerCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.Partner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	snapshot, err := handler.Handle(ctx, fx.cmd)

	require.NoError(t, err)
	require.NotNil(t, snapshot.DeliveryPartnerID)
	assert.Equal(t, fx.partner.ID().String(), *snapshot.DeliveryPartnerID)
	assert.Equal(t, order.Prep.String(), snapshot.Status)
	require.NotNil(t, snapshot.AssignedAt)
	assert.Equal(t, testClock().Now(), *snapshot.AssignedAt)
	assert.False(t, fx.partner.IsAvailable())

	published := publisher.Published()
	require.Len(t, published, 3)
	assert.Equal(t, ports.ChannelOrders, published[0].Channel)
	assert.Equal(t, ports.EventOrderAssigned, published[0].Event.Type)
	assert.Equal(t, ports.ChannelPartners, published[1].Channel)
	assert.Equal(t, ports.EventPartnerAvailabilityChanged, published[1].Event.Type)
	assert.Equal(t, ports.ChannelNotifications, published[2].Channel)
	assert.Equal(t, ports.EventNotification, published[2].Event.Type)

	notification := published[2].Event.Payload.(ports.NotificationPayload)
	assert.Equal(t, fx.partner.ID().String(), notification.RecipientID)
	assert.Contains(t, notification.Message, fx.order.ID().String())

	orderRepo.AssertExpectations(t)
	partnerRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAssignPartnerCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderID", fx.order.ID())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, &recordingPublisher{}, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignPartnerCommandHandler_Handle_NotTheRestaurant(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	strangerID := kernel.NewUUID()
	cmd, err := commands.NewAssignPartnerCommand(fx.order.ID(), strangerID, fx.partner.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrUnauthorized)
	assert.Empty(t, publisher.Published())
}

func TestAssignPartnerCommandHandler_Handle_PartnerNotFound(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).
			Return(nil, errs.NewObjectNotFoundError("partnerID", fx.partner.ID())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignPartnerCommandHandler(factory, &recordingPublisher{}, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAssignPartnerCommandHandler_Handle_OrderAlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	require.NoError(t, fx.order.AssignPartner(kernel.NewUUID(), testClock().Now()))

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	// The loaded partner must stay untouched when the order rejects the assignment.
	assert.True(t, fx.partner.IsAvailable())
	assert.Empty(t, publisher.Published())
}

func TestAssignPartnerCommandHandler_Handle_PartnerBusy(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	require.NoError(t, fx.partner.MarkBusy())

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPartnerUnavailable)
	assert.Empty(t, publisher.Published())
}

func TestAssignPartnerCommandHandler_Handle_PartnerUpdateConflict(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.Partner")).
			Return(errs.NewConflictError("partnerID", fx.partner.ID())).
			Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrConflict)
	assert.Empty(t, publisher.Published())
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestAssignPartnerCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	orderRepo := new(MockOrderRepository)
	partnerRepo := new(MockPartnerRepository)
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("PartnerRepository").Return(partnerRepo)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		orderRepo.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once(),
		partnerRepo.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		partnerRepo.On("Update", ctx, mock.AnythingOfType("*partner.Partner")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(factory, publisher, testClock())
	_, err := handler.Handle(ctx, fx.cmd)

	require.Error(t, err)
	require.EqualError(t, err, "commit error")
	assert.Empty(t, publisher.Published())
}

// Two restaurants race for the same partner. The first assignment commits;
// the second loads the now-busy partner and is turned away. Exactly one
// order ends up holding the partner.
func TestAssignPartnerCommandHandler_Handle_SecondAssignmentLoses(t *testing.T) {
	ctx := t.Context()
	fx := newAssignFixture(t)

	location, err := kernel.NewGeoPoint(40.73, -73.99, "2 Side St")
	require.NoError(t, err)
	secondOrder, err := order.NewOrder(kernel.NewUUID(), fx.restaurantID, "1x Ramen", 15, location, testClock().Now())
	require.NoError(t, err)

	firstRepoOrders := new(MockOrderRepository)
	firstRepoPartners := new(MockPartnerRepository)
	firstUoW := new(MockUoW)
	firstUoW.On("OrderRepository").Return(firstRepoOrders)
	firstUoW.On("PartnerRepository").Return(firstRepoPartners)
	firstUoW.On("Begin", ctx).Return(nil).Once()
	firstUoW.On("Commit", ctx).Return(nil).Once()
	firstUoW.On("Rollback", ctx).Return(nil).Once()
	firstRepoOrders.On("Get", ctx, fx.order.ID()).Return(fx.order, nil).Once()
	firstRepoPartners.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once()
	firstRepoOrders.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	firstRepoPartners.On("Update", ctx, mock.AnythingOfType("*partner.Partner")).Return(nil).Once()

	firstFactory := new(MockUoWFactory)
	firstFactory.On("Create").Return(firstUoW).Once()

	publisher := &recordingPublisher{}
	handler := commands.NewAssignPartnerCommandHandler(firstFactory, publisher, testClock())

	_, err = handler.Handle(ctx, fx.cmd)
	require.NoError(t, err)

	// Second attempt observes the committed busy state.
	secondRepoOrders := new(MockOrderRepository)
	secondRepoPartners := new(MockPartnerRepository)
	secondUoW := new(MockUoW)
	secondUoW.On("OrderRepository").Return(secondRepoOrders)
	secondUoW.On("PartnerRepository").Return(secondRepoPartners)
	secondUoW.On("Begin", ctx).Return(nil).Once()
	secondUoW.On("Rollback", ctx).Return(nil).Once()
	secondRepoOrders.On("Get", ctx, secondOrder.ID()).Return(secondOrder, nil).Once()
	secondRepoPartners.On("Get", ctx, fx.partner.ID()).Return(fx.partner, nil).Once()

	secondFactory := new(MockUoWFactory)
	secondFactory.On("Create").Return(secondUoW).Once()

	secondCmd, err := commands.NewAssignPartnerCommand(secondOrder.ID(), fx.restaurantID, fx.partner.ID())
	require.NoError(t, err)

	secondHandler := commands.NewAssignPartnerCommandHandler(secondFactory, publisher, testClock())
	_, err = secondHandler.Handle(ctx, secondCmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPartnerUnavailable)

	require.NotNil(t, fx.order.DeliveryPartner())
	assert.Equal(t, fx.partner.ID(), *fx.order.DeliveryPartner())
	secondRepoOrders.AssertNotCalled(t, "Update", ctx, mock.Anything)
	secondUoW.AssertNotCalled(t, "Commit", ctx)
	assert.Len(t, publisher.Published(), 3)
}
