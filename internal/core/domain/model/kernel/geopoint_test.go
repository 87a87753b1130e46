package kernel_test

import (
	"testing"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("creates_valid_point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(40.7128, -74.0060)

		require.NoError(t, err)
		assert.InDelta(t, 40.7128, p.Lat(), 1e-9)
		assert.InDelta(t, -74.0060, p.Lng(), 1e-9)
		require.NoError(t, p.Validate())
	})

	t.Run("accepts_boundary_coordinates", func(t *testing.T) {
		for _, coords := range [][2]float64{
			{90, 180}, {-90, -180}, {0, 0},
		} {
			_, err := kernel.NewGeoPoint(coords[0], coords[1])
			require.NoError(t, err)
		}
	})

	t.Run("rejects_latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.01, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewGeoPoint(-90.01, 0)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects_longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(0, 180.01)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewGeoPoint(0, -180.01)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p kernel.GeoPoint
		require.Error(t, p.Validate())
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		b, _ := kernel.NewGeoPoint(40.0, -73.0)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		b, _ := kernel.NewGeoPoint(40.1, -73.0)

		equal, err := a.IsEqual(b)
		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		var b kernel.GeoPoint

		_, err := a.IsEqual(b)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(40.0, -73.0)

		d, err := p.DistanceKm(p)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-6)
	})

	t.Run("short_distance_matches_expected_value", func(t *testing.T) {
		// Roughly 140 meters between two points ~0.001 degrees apart at 40N.
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		b, _ := kernel.NewGeoPoint(40.001, -73.001)

		d, err := a.DistanceKm(b)
		require.NoError(t, err)
		assert.InDelta(t, 0.14, d, 0.01)
	})

	t.Run("distance_is_symmetric", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		b, _ := kernel.NewGeoPoint(41.0, -72.0)

		d1, err := a.DistanceKm(b)
		require.NoError(t, err)
		d2, err := b.DistanceKm(a)
		require.NoError(t, err)
		assert.InDelta(t, d1, d2, 1e-9)
	})

	t.Run("known_city_pair", func(t *testing.T) {
		// New York to Philadelphia is about 130 km great-circle.
		nyc, _ := kernel.NewGeoPoint(40.7128, -74.0060)
		phl, _ := kernel.NewGeoPoint(39.9526, -75.1652)

		d, err := nyc.DistanceKm(phl)
		require.NoError(t, err)
		assert.InDelta(t, 130, d, 2)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		a, _ := kernel.NewGeoPoint(40.0, -73.0)
		var b kernel.GeoPoint

		_, err := a.DistanceKm(b)
		require.Error(t, err)
	})
}
