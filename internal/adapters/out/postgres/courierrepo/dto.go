// Package courierrepo provides data transfer objects and mapping functions for
// courier persistence. It implements the repository pattern for the courier
// aggregate, converting between domain entities and database rows.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Lat/Lng are nullable together: a courier without a position report yet has
// both columns NULL.
type CourierDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Available bool      `gorm:"not null;index"`
	Lat       *float64  `gorm:"type:double precision"`
	Lng       *float64  `gorm:"type:double precision"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	dto := CourierDTO{
		ID:        aggregate.ID().Bytes(),
		Name:      aggregate.Name(),
		Available: aggregate.Available(),
		UpdatedAt: aggregate.UpdatedAt(),
	}

	if loc := aggregate.Location(); loc != nil {
		lat, lng := loc.Lat(), loc.Lng()
		dto.Lat = &lat
		dto.Lng = &lng
	}

	return dto
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return courier.RestoreCourier(id, dto.Name, dto.Available, location, dto.UpdatedAt)
}
