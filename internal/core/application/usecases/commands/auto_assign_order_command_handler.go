package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// ErrNoCourierNearby indicates no available courier is inside the match
// radius of the order waiting longest. Expected during quiet periods.
var ErrNoCourierNearby = errors.New("no available courier within match radius")

// AutoAssignOrderCommandHandler assigns the oldest unassigned order to the
// closest available courier. Runs from the background scheduler; manual
// assignment through the API uses AssignOrderCommandHandler instead.
//
// The order row is re-read under a write lock before the transition so the
// scheduler cannot race a concurrent manual assignment into a double assign.
type AutoAssignOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewAutoAssignOrderCommandHandler creates a handler for automatic assignment.
func NewAutoAssignOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	log *slog.Logger,
) AutoAssignOrderCommandHandler {
	return AutoAssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		log:        log.With("component", "auto_assign_handler"),
	}
}

// Handle picks the oldest waiting order and the closest courier in range.
// Returns errs.ErrObjectNotFound when no order is waiting and
// ErrNoCourierNearby when nobody is in range; both are expected outcomes for
// the scheduler to skip quietly.
func (h AutoAssignOrderCommandHandler) Handle(ctx context.Context, cmd AutoAssignOrderCommand) error {
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

	candidate, err := uow.OrderRepository().GetFirstUnassigned(ctx)
	if err != nil {
		return err
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	matches, err := services.NewGeoMatcher().FindNearby(couriers, candidate.Pricing().Location(), 0)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return ErrNoCourierNearby
	}
	assignee := matches[0].Courier

	// Re-read under lock; the order may have been assigned since the
	// unlocked read above.
	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, candidate.ID())
	if err != nil {
		return err
	}

	if err = aggregate.Assign(assignee.ID(), time.Now().UTC()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.Info("order auto-assigned",
		"order_id", aggregate.ID().String(),
		"courier_id", assignee.ID().String(),
		"distance_km", matches[0].DistanceKm)

	notice := ports.OrderAssignedNotice{
		OrderID:   aggregate.ID().String(),
		CourierID: assignee.ID().String(),
	}
	if !h.notifier.NotifyOrderAssigned(assignee.ID(), notice) {
		h.log.Info("assigned courier not connected, notice skipped",
			"order_id", aggregate.ID().String(),
			"courier_id", assignee.ID().String())
	}
	h.notifier.BroadcastOrderAssigned(notice)

	return h.publisher.Publish(ctx, ports.EventOrderAssigned, orderEventPayload(aggregate))
}
