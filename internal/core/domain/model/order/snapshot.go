package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// ErrSnapshotIsNotConstructed is returned when using an improperly initialized
// PricingSnapshot. Snapshots must be created via NewPricingSnapshot.
var ErrSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"pricing snapshot must be created via NewPricingSnapshot constructor")

// PricingSnapshot is the denormalized pricing and destination snapshot stored
// with an order at creation time. It is an immutable value object: once the
// order exists the snapshot is never mutated, so dispatch decisions and
// notifications always see the price and address the order was created with.
type PricingSnapshot struct { //nolint:recvcheck //using for validation
	total       float64
	deliveryFee float64
	address     string
	location    kernel.GeoPoint
	guard       guard.ConstructorGuard
}

// NewPricingSnapshot creates a validated pricing snapshot.
//
// Parameters:
//   - total: order total including fees (must be >= 0)
//   - deliveryFee: delivery fee portion (must be >= 0)
//   - address: human-readable destination address (must be non-empty)
//   - location: validated destination coordinates
func NewPricingSnapshot(
	total float64,
	deliveryFee float64,
	address string,
	location kernel.GeoPoint,
) (PricingSnapshot, error) {
	s := PricingSnapshot{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setTotal(total),
		s.setDeliveryFee(deliveryFee),
		s.setAddress(address),
		s.setLocation(location),
	); err != nil {
		return PricingSnapshot{}, err
	}

	return s, nil
}

// Validate checks if the snapshot was properly constructed.
func (s PricingSnapshot) Validate() error {
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

// Total returns the order total including fees.
func (s PricingSnapshot) Total() float64 {
	return s.total
}

// DeliveryFee returns the delivery fee portion of the total.
func (s PricingSnapshot) DeliveryFee() float64 {
	return s.deliveryFee
}

// Address returns the human-readable destination address.
func (s PricingSnapshot) Address() string {
	return s.address
}

// Location returns the destination coordinates.
func (s PricingSnapshot) Location() kernel.GeoPoint {
	return s.location
}

func (s *PricingSnapshot) setTotal(total float64) error {
	if total < 0 {
		return errs.NewValueIsInvalidError("total")
	}
	s.total = total
	return nil
}

func (s *PricingSnapshot) setDeliveryFee(fee float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("deliveryFee")
	}
	s.deliveryFee = fee
	return nil
}

func (s *PricingSnapshot) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	s.address = address
	return nil
}

func (s *PricingSnapshot) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}
