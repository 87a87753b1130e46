// Package services provides domain services that operate across multiple
// domain entities in the dispatch engine.
//
// The package includes:
//   - GeoMatcher: a pure geospatial service ranking available couriers by
//     great-circle distance from a query point
//
// Domain services hold no state and perform no I/O; they implement the
// business logic that does not naturally belong to a single aggregate root.
package services
