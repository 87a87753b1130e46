// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetNearbyCouriersQueryIsNotConstructed = errors.New(
	"GetNearbyCouriersQuery must be created via NewGetNearbyCouriersQuery constructor",
)

// GetNearbyCouriersQuery retrieves the available couriers within a radius of
// a query point, closest first. Used by dispatcher consoles and by the order
// broadcast endpoint to preview candidates.
//
// Example:
//
//	origin, _ := kernel.NewGeoPoint(40.0, -73.0)
//	query, err := NewGetNearbyCouriersQuery(origin, 5)
//	if err != nil {
//	    return err
//	}
//
//	couriers, err := handler.Handle(ctx, query)
//	for _, c := range couriers {
//	    fmt.Printf("%s is %.2f km away\n", c.Name, c.DistanceKm)
//	}
type GetNearbyCouriersQuery struct {
	origin   kernel.GeoPoint
	radiusKm float64

	guard guard.ConstructorGuard
}

// NewGetNearbyCouriersQuery creates a query for couriers near a point.
// Non-positive radius values fall back to the default match radius.
func NewGetNearbyCouriersQuery(origin kernel.GeoPoint, radiusKm float64) (GetNearbyCouriersQuery, error) {
	if err := origin.Validate(); err != nil {
		return GetNearbyCouriersQuery{}, err
	}

	return GetNearbyCouriersQuery{
		origin:   origin,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyCouriersQueryIsNotConstructed)
}

// Origin returns the query point.
func (q GetNearbyCouriersQuery) Origin() kernel.GeoPoint {
	return q.origin
}

// RadiusKm returns the requested radius in kilometers.
func (q GetNearbyCouriersQuery) RadiusKm() float64 {
	return q.radiusKm
}

// GetNearbyCouriersQueryResponse represents one nearby courier in the read model.
type GetNearbyCouriersQueryResponse struct {
	ID         kernel.UUID
	Name       string
	Location   kernel.GeoPoint
	DistanceKm float64
}
