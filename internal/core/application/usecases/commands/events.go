package commands

import (
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// orderEventPayload flattens an order aggregate into the broker payload shared
// by the order.created, order.updated, and order.assigned events.
func orderEventPayload(o *order.Order) ports.OrderEventPayload {
	payload := ports.OrderEventPayload{
		OrderID:     o.ID().String(),
		Code:        o.Code(),
		Status:      o.Status().String(),
		Total:       o.Pricing().Total(),
		DeliveryFee: o.Pricing().DeliveryFee(),
		Address:     o.Pricing().Address(),
		Lat:         o.Pricing().Location().Lat(),
		Lng:         o.Pricing().Location().Lng(),
	}

	if courierID := o.Courier(); courierID != nil {
		payload.CourierID = courierID.String()
	}

	for _, entry := range o.AuditLog() {
		payload.AuditLog = append(payload.AuditLog,
			fmt.Sprintf("%s %s", entry.At().Format(time.RFC3339), entry.Text()))
	}

	return payload
}

// newOrderNotice builds the live-connection push for one matched candidate.
func newOrderNotice(o *order.Order, distanceKm float64) ports.NewOrderNotice {
	return ports.NewOrderNotice{
		OrderID:     o.ID().String(),
		Code:        o.Code(),
		Total:       o.Pricing().Total(),
		DeliveryFee: o.Pricing().DeliveryFee(),
		Address:     o.Pricing().Address(),
		Lat:         o.Pricing().Location().Lat(),
		Lng:         o.Pricing().Location().Lng(),
		DistanceKm:  distanceKm,
	}
}
