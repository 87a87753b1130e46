package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/ports"
)

// AssignOrderCommandHandler performs the guarded transactional assignment of
// a courier to an order.
//
// The transaction loads the order row under a write lock, so of two
// concurrent assignments of the same order exactly one commits and the other
// observes a conflict. After commit (outside the transaction boundary) the
// handler publishes order.assigned and pushes the assignment to the courier's
// live connection; these post-commit effects are not transactionally
// guaranteed.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, publisher, notifier, log)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown order or courier
//	case errors.Is(err, errs.ErrConflict):
//	    // order already assigned
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	log        *slog.Logger
}

// NewAssignOrderCommandHandler creates a handler for courier assignment operations.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	log *slog.Logger,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		notifier:   notifier,
		log:        log.With("component", "assign_order_handler"),
	}
}

// Handle processes the assignment command.
// Returns errs.ErrObjectNotFound when the order or courier does not exist and
// errs.ErrConflict when the order is already assigned. A courier without a
// live connection is a soft miss that is logged, never an error.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, cmd AssignOrderCommand) error {
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

	aggregate, err := uow.OrderRepository().GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	assignee, err := uow.CourierRepository().Get(ctx, cmd.CourierID())
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
