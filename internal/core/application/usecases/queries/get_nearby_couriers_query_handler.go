package queries

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetNearbyCouriersQueryHandler retrieves available couriers near a point.
// Uses a direct SQL read for the candidate rows and ranks them with the same
// great-circle distance the matcher applies, so the read model and the
// dispatch path never disagree on who is "nearby".
type GetNearbyCouriersQueryHandler struct {
	db *gorm.DB
}

// NewGetNearbyCouriersQueryHandler creates a handler for nearby courier queries.
// Requires a GORM database connection for query execution.
func NewGetNearbyCouriersQueryHandler(db *gorm.DB) GetNearbyCouriersQueryHandler {
	return GetNearbyCouriersQueryHandler{db: db}
}

// Handle executes the query.
// Returns couriers strictly inside the radius sorted ascending by distance.
// Couriers without a position report yet are excluded.
func (h GetNearbyCouriersQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyCouriersQuery,
) ([]GetNearbyCouriersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	radiusKm := query.RadiusKm()
	if radiusKm <= 0 {
		radiusKm = services.DefaultMatchRadiusKm
	}

	couriers := make([]GetNearbyCouriersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			lat,
			lng
		FROM couriers
		WHERE available AND lat IS NOT NULL AND lng IS NOT NULL
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetNearbyCouriersQueryResponse
		var id uuid.UUID
		var lat, lng float64

		err = rows.Scan(&id, &resp.Name, &lat, &lng)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = courierID

		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}
		resp.Location = location

		distance, distErr := query.Origin().DistanceKm(location)
		if distErr != nil {
			return nil, distErr
		}
		if distance >= radiusKm {
			continue
		}
		resp.DistanceKm = distance

		couriers = append(couriers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(couriers, func(i, j int) bool {
		return couriers[i].DistanceKm < couriers[j].DistanceKm
	})

	return couriers, nil
}
