package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier known to the dispatch engine.
// It is an aggregate root that manages courier identity, availability, and
// last reported position.
//
// Business rules:
//   - Courier must have a valid UUID and a non-empty name
//   - Position is nil until the courier reports a location for the first time
//   - Position and the last-update timestamp are written together, never separately
//   - Only available couriers with a known position participate in matching
//
// Example usage:
//
//	c, err := NewCourier(kernel.NewUUID(), "John Doe")
//	if err != nil {
//	    // Handle construction error
//	}
//	point, _ := kernel.NewGeoPoint(40.0, -73.0)
//	_ = c.MoveTo(point, time.Now())
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// available reports whether the courier accepts new orders
	available bool
	// location is the last reported position, nil until first report
	location *kernel.GeoPoint
	// updatedAt is the timestamp of the last location or availability change
	updatedAt time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified identity and name.
// The courier starts available with no known position.
//
// Parameters:
//   - id: Unique identifier for the courier (must be a valid UUID)
//   - name: Human-readable name (must be non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier
//   - error: Validation error if any parameter is invalid
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage.
// Unlike NewCourier it accepts the full persisted state, including a possibly
// nil position and the stored update timestamp.
func RestoreCourier(
	id kernel.UUID,
	name string,
	available bool,
	location *kernel.GeoPoint,
	updatedAt time.Time,
) (*Courier, error) {
	c := &Courier{
		available: available,
		updatedAt: updatedAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		c.location = &loc
	}

	return c, nil
}

// Validate ensures the Courier was properly constructed via a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Available reports whether the courier accepts new orders.
func (c *Courier) Available() bool {
	return c.available
}

// Location returns the last reported position, or nil if the courier has
// never reported one.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// UpdatedAt returns the timestamp of the last state change.
func (c *Courier) UpdatedAt() time.Time {
	return c.updatedAt
}

// MoveTo records a new position report. Position and timestamp are written
// together so readers never observe a location without its report time.
func (c *Courier) MoveTo(point kernel.GeoPoint, at time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.location = &point
	c.updatedAt = at
	return nil
}

// SetAvailable switches the courier's availability flag.
func (c *Courier) SetAvailable(available bool, at time.Time) {
	c.available = available
	c.updatedAt = at
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}
