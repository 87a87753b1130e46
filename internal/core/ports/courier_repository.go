// Package ports defines the contracts between the dispatch core and its
// infrastructure adapters: repositories, the unit of work, the event
// publisher, and the live-connection notifier. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	// The courier must exist in the repository and be valid.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves all couriers with available=true.
	// Couriers without a known position are included; the GeoMatcher
	// filters them out during matching.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)
}
