package courier_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	t.Run("creates_available_courier_without_position", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := courier.NewCourier(id, "John Doe")

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "John Doe", c.Name())
		assert.True(t, c.Available())
		assert.Nil(t, c.Location())
	})

	t.Run("rejects_empty_name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "")
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
	})

	t.Run("rejects_zero_value_id", func(t *testing.T) {
		var id kernel.UUID
		_, err := courier.NewCourier(id, "John Doe")
		require.Error(t, err)
	})
}

func TestRestoreCourier(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()
		point, _ := kernel.NewGeoPoint(40.0, -73.0)
		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		c, err := courier.RestoreCourier(id, "Jane", false, &point, at)

		require.NoError(t, err)
		assert.False(t, c.Available())
		require.NotNil(t, c.Location())
		assert.InDelta(t, 40.0, c.Location().Lat(), 1e-9)
		assert.Equal(t, at, c.UpdatedAt())
	})

	t.Run("restores_courier_without_position", func(t *testing.T) {
		c, err := courier.RestoreCourier(kernel.NewUUID(), "Jane", true, nil, time.Time{})

		require.NoError(t, err)
		assert.Nil(t, c.Location())
	})

	t.Run("rejects_unconstructed_position", func(t *testing.T) {
		var point kernel.GeoPoint
		_, err := courier.RestoreCourier(kernel.NewUUID(), "Jane", true, &point, time.Time{})
		require.Error(t, err)
	})
}

func TestCourier_MoveTo(t *testing.T) {
	t.Run("writes_position_and_timestamp_together", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "John Doe")
		point, _ := kernel.NewGeoPoint(40.001, -73.001)
		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, c.MoveTo(point, at))

		require.NotNil(t, c.Location())
		assert.InDelta(t, 40.001, c.Location().Lat(), 1e-9)
		assert.InDelta(t, -73.001, c.Location().Lng(), 1e-9)
		assert.Equal(t, at, c.UpdatedAt())
	})

	t.Run("rejects_unconstructed_point", func(t *testing.T) {
		c, _ := courier.NewCourier(kernel.NewUUID(), "John Doe")
		var point kernel.GeoPoint

		require.Error(t, c.MoveTo(point, time.Now()))
		assert.Nil(t, c.Location())
	})
}

func TestCourier_SetAvailable(t *testing.T) {
	c, _ := courier.NewCourier(kernel.NewUUID(), "John Doe")
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c.SetAvailable(false, at)

	assert.False(t, c.Available())
	assert.Equal(t, at, c.UpdatedAt())
}

func TestCourier_Validate(t *testing.T) {
	t.Run("nil_courier_is_invalid", func(t *testing.T) {
		var c *courier.Courier
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})

	t.Run("zero_value_is_invalid", func(t *testing.T) {
		c := &courier.Courier{}
		require.ErrorIs(t, c.Validate(), courier.ErrCourierIsNotConstructed)
	})
}
