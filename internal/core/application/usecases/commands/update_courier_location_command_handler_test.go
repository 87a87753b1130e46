package commands_test

import (
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateCourierLocationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	require.NoError(t, err)

	position, err := kernel.NewGeoPoint(40.73, -73.93)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateCourierLocationCommand(rider.ID(), position)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	courierRepo.On("Get", ctx, rider.ID()).Return(rider, nil).Once()
	courierRepo.On("Update", ctx, rider).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("BroadcastCourierLocation", ports.CourierLocationNotice{
		CourierID: rider.ID().String(),
		Lat:       40.73,
		Lng:       -73.93,
	}).Return().Once()

	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.EventRiderLocation, mock.AnythingOfType("ports.RiderLocationPayload")).
		Return(nil).Once()

	h := commands.NewUpdateCourierLocationCommandHandler(factory, publisher, notifier, discardLogger())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.NotNil(t, rider.Location())
	require.Equal(t, 40.73, rider.Location().Lat())
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestUpdateCourierLocationCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()
	position, err := kernel.NewGeoPoint(40.73, -73.93)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, position)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", ctx, courierID).
			Return(nil, errs.NewObjectNotFoundError("courier", courierID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCourierLocationCommandHandler(
		factory, new(MockEventPublisher), new(MockNotifier), discardLogger())
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestUpdateCourierLocationCommandHandler_Handle_PublishFailureTolerated(t *testing.T) {
	ctx := t.Context()
	rider, err := courier.NewCourier(kernel.NewUUID(), "Bob")
	require.NoError(t, err)

	position, err := kernel.NewGeoPoint(40.73, -73.93)
	require.NoError(t, err)
	cmd, err := commands.NewUpdateCourierLocationCommand(rider.ID(), position)
	require.NoError(t, err)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	courierRepo.On("Get", ctx, rider.ID()).Return(rider, nil).Once()
	courierRepo.On("Update", ctx, rider).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("BroadcastCourierLocation", mock.Anything).Return().Once()

	// Position reports supersede each other; a dropped event is acceptable.
	publisher := new(MockEventPublisher)
	publisher.On("Publish", ctx, ports.EventRiderLocation, mock.Anything).
		Return(errors.New("broker down")).Once()

	h := commands.NewUpdateCourierLocationCommandHandler(factory, publisher, notifier, discardLogger())
	err = h.Handle(ctx, cmd)
	require.NoError(t, err)
	publisher.AssertExpectations(t)
}
