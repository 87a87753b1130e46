package services

import (
	"sort"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// DefaultMatchRadiusKm is the search radius applied when the caller passes a
// non-positive radius.
const DefaultMatchRadiusKm = 5.0

// Match pairs a candidate courier with its great-circle distance from the
// query point.
type Match struct {
	Courier    *courier.Courier
	DistanceKm float64
}

// GeoMatcher is a domain service that finds available couriers near a point.
//
// Matching rules:
//   - Only couriers with available=true and a known position are considered
//   - A courier is a match when its distance is strictly less than the radius;
//     a courier exactly at the radius is excluded
//   - Matches are sorted ascending by distance with a stable sort, so couriers
//     at equal distance keep their incoming relative order
//
// GeoMatcher is stateless, has no side effects, and is safe for unlimited
// concurrent callers.
//
// Example usage:
//
//	matcher := services.NewGeoMatcher()
//	matches, err := matcher.FindNearby(couriers, pickupPoint, 5)
//	if err != nil {
//	    // Handle validation failure
//	}
//	for _, m := range matches {
//	    fmt.Printf("%s is %.3f km away\n", m.Courier.Name(), m.DistanceKm)
//	}
type GeoMatcher struct{}

// NewGeoMatcher creates a new GeoMatcher instance.
func NewGeoMatcher() GeoMatcher {
	return GeoMatcher{}
}

// FindNearby returns the couriers within radiusKm of origin, closest first.
//
// Parameters:
//   - couriers: candidate couriers to evaluate
//   - origin: validated query point
//   - radiusKm: search radius in kilometers; values <= 0 fall back to
//     DefaultMatchRadiusKm
//
// Returns an empty slice (not an error) when no courier matches. Returns an
// error only when the origin or a candidate courier fails validation.
func (GeoMatcher) FindNearby(
	couriers []*courier.Courier,
	origin kernel.GeoPoint,
	radiusKm float64,
) ([]Match, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	if radiusKm <= 0 {
		radiusKm = DefaultMatchRadiusKm
	}

	matches := make([]Match, 0, len(couriers))
	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}

		if !c.Available() || c.Location() == nil {
			continue
		}

		distance, err := origin.DistanceKm(*c.Location())
		if err != nil {
			return nil, err
		}

		if distance < radiusKm {
			matches = append(matches, Match{Courier: c, DistanceKm: distance})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})

	return matches, nil
}
