package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
)

// UpdateCourierLocationCommandHandler records courier position reports.
// The position and its timestamp are written atomically; after commit the
// report is fanned out to dispatcher consoles and published as a
// rider.location event for downstream consumers.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewUpdateCourierLocationCommandHandler creates a handler for courier
// position reports.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	log *slog.Logger,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		log:        log.With("component", "courier_location_handler"),
	}
}

// Handle processes a courier position report.
// Returns errs.ErrObjectNotFound for an unknown courier. The rider.location
// event is short-lived broker traffic; a publish failure while the broker is
// down is logged and not surfaced, since the next report supersedes this one
// within seconds.
func (h UpdateCourierLocationCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateCourierLocationCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	rider, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = rider.MoveTo(cmd.Location(), time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, rider); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.BroadcastCourierLocation(ports.CourierLocationNotice{
		CourierID: rider.ID().String(),
		Lat:       cmd.Location().Lat(),
		Lng:       cmd.Location().Lng(),
	})

	payload := ports.RiderLocationPayload{
		CourierID: rider.ID().String(),
		Lat:       cmd.Location().Lat(),
		Lng:       cmd.Location().Lng(),
	}
	if err = h.publisher.Publish(ctx, ports.EventRiderLocation, payload); err != nil {
		h.log.Warn("rider location publish failed", "courier_id", rider.ID().String(), "error", err)
	}

	return nil
}
