// Package kernel provides shared value objects used across the dispatch domain.
//
// The package includes:
//   - UUID: identity value object wrapping github.com/google/uuid
//   - GeoPoint: validated WGS84 coordinate pair with great-circle distance
//
// All value objects are immutable and must be created through their
// constructors; the zero value fails Validate.
package kernel
