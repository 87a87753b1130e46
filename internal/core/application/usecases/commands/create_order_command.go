package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrCodeIsRequired    = errors.New("code is required")
	ErrAddressIsRequired = errors.New("address is required")
	ErrTotalIsInvalid    = errors.New("total must not be negative")
	ErrFeeIsInvalid      = errors.New("delivery fee must not be negative")
)

// CreateOrderCommand represents a request to register a new delivery order.
// Carries the order identity, the human-readable code, the pricing figures,
// and the pickup location used for courier matching. The radius is optional;
// non-positive values fall back to the default match radius.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	pickup, _ := kernel.NewGeoPoint(40.0, -73.0)
//	cmd, err := NewCreateOrderCommand(orderID, "A-1042", 54.90, 6.50, "123 Main Street", pickup, 0)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	code        string
	total       float64
	deliveryFee float64
	address     string
	location    kernel.GeoPoint
	radiusKm    float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that the order ID and pickup location are valid, the code and
// address are not empty, and the pricing figures are not negative.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	code string,
	total float64,
	deliveryFee float64,
	address string,
	location kernel.GeoPoint,
	radiusKm float64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCode(code),
		orderCommand.setTotal(total),
		orderCommand.setDeliveryFee(deliveryFee),
		orderCommand.setAddress(address),
		orderCommand.setLocation(location),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Code returns the human-readable order code.
func (c CreateOrderCommand) Code() string {
	return c.code
}

// Total returns the order total in currency units.
func (c CreateOrderCommand) Total() float64 {
	return c.total
}

// DeliveryFee returns the delivery fee in currency units.
func (c CreateOrderCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

// Address returns the delivery destination address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// Location returns the pickup location used for courier matching.
func (c CreateOrderCommand) Location() kernel.GeoPoint {
	return c.location
}

// RadiusKm returns the requested match radius in kilometers.
// Non-positive values mean "use the default".
func (c CreateOrderCommand) RadiusKm() float64 {
	return c.radiusKm
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCode(code string) error {
	if code == "" {
		return ErrCodeIsRequired
	}

	c.code = code
	return nil
}

func (c *CreateOrderCommand) setTotal(total float64) error {
	if total < 0 {
		return ErrTotalIsInvalid
	}

	c.total = total
	return nil
}

func (c *CreateOrderCommand) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return ErrFeeIsInvalid
	}

	c.deliveryFee = fee
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return ErrAddressIsRequired
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}
