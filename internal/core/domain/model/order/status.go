package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the assignment state of an order.
// It implements a deliberately small state machine:
//
//	Unassigned ──assign──> Assigned
//
// Assigned is final within this core; there is no reassignment and no
// further persisted transition. Delivery progress (accepted, delivered)
// is owned by the order-lifecycle collaborator.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unassigned is the initial status when an order is first created.
	// Orders in this status are waiting for a courier.
	Unassigned

	// Assigned indicates the order has been assigned to a courier.
	// This is a final state within the dispatch core.
	Assigned
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Unassigned: "Unassigned",
		Assigned:   "Assigned",
	}
}

// Validate checks if the Status value is valid.
// Valid statuses are Unassigned and Assigned; Unknown and any other
// values are invalid.
func (s Status) Validate() error {
	if s != Unassigned && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Unassigned -> Assigned
//
// Any other source status returns an error; an already Assigned order in
// particular is a conflict, since assignment happens at most once.
func (s Status) Assign() (Status, error) {
	if s == Assigned {
		return 0, errs.NewConflictErrorWithCause("status", s.String(),
			fmt.Errorf("order is already assigned"))
	}
	if s != Unassigned {
		return 0, errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()))
	}

	return Assigned, nil
}
