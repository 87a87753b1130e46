package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrBroadcastOrderCommandIsNotConstructed = errors.New(
	"BroadcastOrderCommand must be created via NewBroadcastOrderCommand constructor",
)

// BroadcastOrderCommand re-pushes an unassigned order to the couriers
// currently near its pickup point. Operators use it when the initial
// new-order notices found no taker.
type BroadcastOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewBroadcastOrderCommand creates a command to re-broadcast an order.
// Non-positive radius values fall back to the default match radius.
func NewBroadcastOrderCommand(orderID kernel.UUID, radiusKm float64) (BroadcastOrderCommand, error) {
	broadcastCommand := BroadcastOrderCommand{
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}

	if err := broadcastCommand.setOrderID(orderID); err != nil {
		return BroadcastOrderCommand{}, err
	}

	return broadcastCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c BroadcastOrderCommand) Validate() error {
	return c.guard.Validate(ErrBroadcastOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to re-broadcast.
func (c BroadcastOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RadiusKm returns the requested match radius in kilometers.
func (c BroadcastOrderCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *BroadcastOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
