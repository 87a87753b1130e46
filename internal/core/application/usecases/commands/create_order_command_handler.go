package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the order with its pricing snapshot in one transaction, then
// (outside the transaction boundary) matches nearby available couriers,
// pushes a new-order notice to each candidate's live connection, and
// publishes the order.created event.
//
// The post-commit effects are not transactionally guaranteed: if the broker
// is unreachable the handler returns the publish error to the caller while
// the committed order stands.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	log *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		log:        log.With("component", "create_order_handler"),
	}
}

// Handle processes the order creation command.
// The order row, its pricing snapshot, and the initial audit entry commit
// atomically; candidate couriers are read in the same transaction. A candidate
// without a live connection is a soft miss that is logged and skipped.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pricing, err := order.NewPricingSnapshot(cmd.Total(), cmd.DeliveryFee(), cmd.Address(), cmd.Location())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.Code(), pricing, time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	couriers, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	matches, err := services.NewGeoMatcher().FindNearby(couriers, cmd.Location(), cmd.RadiusKm())
	if err != nil {
		return err
	}

	for _, match := range matches {
		delivered := h.notifier.NotifyNewOrder(match.Courier.ID(), newOrderNotice(newOrder, match.DistanceKm))
		if !delivered {
			h.log.Info("candidate courier not connected, notice skipped",
				"order_id", newOrder.ID().String(),
				"courier_id", match.Courier.ID().String())
		}
	}

	return h.publisher.Publish(ctx, ports.EventOrderCreated, orderEventPayload(newOrder))
}
