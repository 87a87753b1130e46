package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBroadcastOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := unassignedOrder(t)
	nearby := courierAt(t, "Bob", 40.001, -73.001)
	faraway := courierAt(t, "Alice", 41.0, -74.0)

	cmd, err := commands.NewBroadcastOrderCommand(aggregate.ID(), 5)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	courierRepo.On("GetAllAvailable", ctx).Return([]*courier.Courier{nearby, faraway}, nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	// Only the in-radius courier gets the re-push.
	notifier := new(MockNotifier)
	notifier.On("NotifyNewOrder", nearby.ID(), mock.AnythingOfType("ports.NewOrderNotice")).
		Return(true).Once()

	h := commands.NewBroadcastOrderCommandHandler(factory, notifier, discardLogger())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	notifier.AssertExpectations(t)
	notifier.AssertNotCalled(t, "NotifyNewOrder", faraway.ID(), mock.Anything)
}

func TestBroadcastOrderCommandHandler_Handle_AlreadyAssigned(t *testing.T) {
	ctx := t.Context()
	aggregate := unassignedOrder(t)
	require.NoError(t, aggregate.Assign(kernel.NewUUID(), time.Now()))

	cmd, err := commands.NewBroadcastOrderCommand(aggregate.ID(), 5)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBroadcastOrderCommandHandler(factory, new(MockNotifier), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestBroadcastOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewBroadcastOrderCommand(orderID, 5)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).
			Return(nil, errs.NewObjectNotFoundError("order", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewBroadcastOrderCommandHandler(factory, new(MockNotifier), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
