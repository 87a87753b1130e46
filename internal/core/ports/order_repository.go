package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate together with its pricing
	// snapshot and initial audit log.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order by ID while holding a row-level
	// write lock for the remainder of the surrounding transaction.
	// This is the compare-and-set guard that serializes concurrent
	// assignments of the same order; it must be called inside an
	// active unit-of-work transaction.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetFirstUnassigned retrieves the oldest order still waiting for a
	// courier. Used by the auto-assignment job.
	GetFirstUnassigned(ctx context.Context) (*order.Order, error)
}
