// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the row-lock read that guards assignment.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The pricing snapshot is flattened into the row; the audit log is stored as
// a JSONB array since it is only ever read back whole.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code        string          `gorm:"type:varchar(64);not null"`
	Status      int             `gorm:"type:int;not null;index"`
	CourierID   *uuid.UUID      `gorm:"type:uuid;index"`
	Total       float64         `gorm:"not null"`
	DeliveryFee float64         `gorm:"not null"`
	Address     string          `gorm:"type:varchar(512);not null"`
	Lat         float64         `gorm:"type:double precision;not null"`
	Lng         float64         `gorm:"type:double precision;not null"`
	AuditLog    []AuditEntryDTO `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AuditEntryDTO is one element of the JSONB audit log column.
type AuditEntryDTO struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:          aggregate.ID().Bytes(),
		Code:        aggregate.Code(),
		Status:      int(aggregate.Status()),
		Total:       aggregate.Pricing().Total(),
		DeliveryFee: aggregate.Pricing().DeliveryFee(),
		Address:     aggregate.Pricing().Address(),
		Lat:         aggregate.Pricing().Location().Lat(),
		Lng:         aggregate.Pricing().Location().Lng(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
	}

	if courierID := aggregate.Courier(); courierID != nil {
		raw := courierID.Bytes()
		dto.CourierID = &raw
	}

	for _, entry := range aggregate.AuditLog() {
		dto.AuditLog = append(dto.AuditLog, AuditEntryDTO{At: entry.At(), Text: entry.Text()})
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Lat, dto.Lng)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricingSnapshot(dto.Total, dto.DeliveryFee, dto.Address, location)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	auditLog := make([]order.AuditEntry, 0, len(dto.AuditLog))
	for _, entryDTO := range dto.AuditLog {
		entry, entryErr := order.NewAuditEntry(entryDTO.At, entryDTO.Text)
		if entryErr != nil {
			return nil, entryErr
		}
		auditLog = append(auditLog, entry)
	}

	return order.RestoreOrder(
		id,
		dto.Code,
		pricing,
		order.Status(dto.Status),
		courierID,
		auditLog,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
