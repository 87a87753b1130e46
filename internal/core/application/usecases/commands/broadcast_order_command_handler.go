package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// BroadcastOrderCommandHandler re-pushes an unassigned order to every courier
// currently within the match radius of its pickup point. The operation is
// read-only with respect to the database; only live-connection pushes happen.
type BroadcastOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewBroadcastOrderCommandHandler creates a handler for order re-broadcasts.
func NewBroadcastOrderCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	log *slog.Logger,
) BroadcastOrderCommandHandler {
	return BroadcastOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		log:        log.With("component", "broadcast_order_handler"),
	}
}

// Handle re-broadcasts the order.
// Returns errs.ErrObjectNotFound for an unknown order and errs.ErrConflict
// when the order is already assigned and there is nothing left to offer.
func (h BroadcastOrderCommandHandler) Handle(ctx context.Context, cmd BroadcastOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if aggregate.Status() == order.Assigned {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	matches, err := services.NewGeoMatcher().FindNearby(couriers, aggregate.Pricing().Location(), cmd.RadiusKm())
	if err != nil {
		return err
	}

	delivered := 0
	for _, match := range matches {
		if h.notifier.NotifyNewOrder(match.Courier.ID(), newOrderNotice(aggregate, match.DistanceKm)) {
			delivered++
		}
	}

	h.log.Info("order re-broadcast",
		"order_id", aggregate.ID().String(),
		"candidates", len(matches),
		"delivered", delivered)

	return nil
}
