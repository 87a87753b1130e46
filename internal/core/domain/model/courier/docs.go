// Package courier provides the Courier aggregate for the dispatch engine.
//
// A courier has an identity, an availability flag, and a position that is
// unknown until the first location report arrives. Position and the
// last-update timestamp are always written together.
//
// The courier lifecycle (onboarding, shifts, vehicle data) is owned by the
// courier-management collaborator; this core only reads couriers for
// geospatial matching and writes position updates.
package courier
