package ports

import "dispatch/internal/core/domain/model/kernel"

// NewOrderNotice is pushed to each candidate courier when an order is created
// or re-broadcast. DistanceKm is the candidate's own distance to the pickup.
type NewOrderNotice struct {
	OrderID     string  `json:"orderId"`
	Code        string  `json:"code"`
	Total       float64 `json:"total"`
	DeliveryFee float64 `json:"deliveryFee"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DistanceKm  float64 `json:"distanceKm"`
}

// OrderAssignedNotice is pushed to the assigned courier and broadcast to
// dispatcher consoles after a successful assignment.
type OrderAssignedNotice struct {
	OrderID   string `json:"orderId"`
	CourierID string `json:"courierId"`
}

// CourierLocationNotice is broadcast to dispatcher consoles on every courier
// position report for live-dashboard consumption.
type CourierLocationNotice struct {
	CourierID string  `json:"courierId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

// Notifier pushes payloads over live connections. Implementations are
// best-effort: a courier that is not currently connected is a soft miss
// reported as false, never an error, and the caller decides the fallback.
//
// The method set is a closed enumeration of everything the core ever pushes,
// so an unhandled notification kind is visible at compile time.
type Notifier interface {
	// NotifyNewOrder pushes a new-order notice to one candidate courier.
	// Returns false if the courier has no live connection.
	NotifyNewOrder(courierID kernel.UUID, notice NewOrderNotice) bool

	// NotifyOrderAssigned pushes an assignment notice to the assigned
	// courier. Returns false if the courier has no live connection.
	NotifyOrderAssigned(courierID kernel.UUID, notice OrderAssignedNotice) bool

	// BroadcastOrderAssigned fans the assignment out to every dispatcher
	// console. Individual send failures are logged, not propagated.
	BroadcastOrderAssigned(notice OrderAssignedNotice)

	// BroadcastCourierLocation fans a courier position report out to every
	// dispatcher console. Individual send failures are logged, not propagated.
	BroadcastCourierLocation(notice CourierLocationNotice)
}
