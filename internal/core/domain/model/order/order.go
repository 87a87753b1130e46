package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order represents a delivery order in the dispatch engine. It is the
// aggregate root that manages the order's assignment lifecycle.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty human code
//   - Carries an immutable pricing snapshot created with the order
//   - Transitions Unassigned -> Assigned at most once; the courier reference
//     is set exactly once, a second attempt is a conflict
//   - The audit log is append-only and ordered
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// code is the short human-readable order code shown to couriers
	code string

	// courierID is the assigned courier's ID (nil while unassigned)
	courierID *kernel.UUID

	// pricing is the immutable pricing/destination snapshot
	pricing PricingSnapshot

	// status is the current assignment state
	status Status

	// auditLog is the ordered append-only list of audit entries
	auditLog []AuditEntry

	// createdAt is the creation timestamp
	createdAt time.Time

	// updatedAt is the timestamp of the last state change
	updatedAt time.Time

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way
// to create a fresh Order, ensuring all business invariants hold.
//
// Parameters:
//   - id: Unique identifier for the order (must be a valid UUID)
//   - code: Short human-readable order code (must be non-empty)
//   - pricing: Validated pricing snapshot
//   - at: Creation timestamp, also used for the first audit entry
//
// The order starts in Unassigned status with no courier and a single
// "order created" audit line.
func NewOrder(id kernel.UUID, code string, pricing PricingSnapshot, at time.Time) (*Order, error) {
	o := &Order{
		status:        Unassigned,
		createdAt:     at,
		updatedAt:     at,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	if err := o.AppendAudit("order created", at); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// It accepts the full persisted state including status, courier reference,
// and audit log, and validates status/courier consistency.
func RestoreOrder(
	id kernel.UUID,
	code string,
	pricing PricingSnapshot,
	status Status,
	courierID *kernel.UUID,
	auditLog []AuditEntry,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		auditLog:      auditLog,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setPricing(pricing),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		if status != Assigned {
			return nil, errs.NewValueIsInvalidErrorWithCause("courierId",
				fmt.Errorf("%s order cannot reference a courier", status))
		}
		cID := *courierID
		o.courierID = &cID
	} else if status == Assigned {
		return nil, errs.NewValueIsInvalidErrorWithCause("courierId",
			errors.New("assigned order must reference a courier"))
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct, for example when reconstructing from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Code returns the short human-readable order code.
func (o *Order) Code() string {
	return o.code
}

// Pricing returns the immutable pricing snapshot.
func (o *Order) Pricing() PricingSnapshot {
	return o.pricing
}

// Status returns the current assignment status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil while unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// AuditLog returns the ordered audit entries.
// The returned slice must not be mutated by callers.
func (o *Order) AuditLog() []AuditEntry {
	return o.auditLog
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the timestamp of the last state change.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Assign assigns the order to a courier, transitioning Unassigned -> Assigned.
//
// This method enforces the following business rules:
//   - The courier ID must be valid
//   - The order must be Unassigned; assigning an already assigned order
//     returns a conflict error (assignment happens at most once)
//
// On success the courier reference, status, update timestamp, and an audit
// line are all recorded on the aggregate.
func (o *Order) Assign(courierID kernel.UUID, at time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.updatedAt = at
	return o.AppendAudit(fmt.Sprintf("assigned to courier %s", courierID), at)
}

// AppendAudit appends a timestamped line to the order's audit log.
// The log is append-only; existing entries are never modified.
func (o *Order) AppendAudit(text string, at time.Time) error {
	entry, err := NewAuditEntry(at, text)
	if err != nil {
		return err
	}

	o.auditLog = append(o.auditLog, entry)
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCode validates and sets the order's human-readable code.
func (o *Order) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	o.code = code
	return nil
}

// setPricing validates and sets the pricing snapshot.
func (o *Order) setPricing(pricing PricingSnapshot) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}
