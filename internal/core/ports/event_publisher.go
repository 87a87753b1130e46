package ports

import "context"

// EventType identifies an event on the broker. The set is closed: publishing
// and topology declaration only ever deal with the constants below, so an
// unhandled event type is a compile-time visible omission rather than a
// silently unbound routing key.
type EventType string

// Broker event types, used both as routing keys and queue names.
const (
	EventOrderCreated  EventType = "order.created"
	EventOrderUpdated  EventType = "order.updated"
	EventOrderAssigned EventType = "order.assigned"
	EventRiderLocation EventType = "rider.location"
)

// AllEventTypes lists every event type for topology declaration.
func AllEventTypes() []EventType {
	return []EventType{EventOrderCreated, EventOrderUpdated, EventOrderAssigned, EventRiderLocation}
}

// EventPublisher publishes domain events to the durable broker.
//
// Publish serializes payload to JSON, wraps it in the event envelope
// (type, ISO-8601 timestamp, retry-count header), and publishes it as a
// persistent message routed by eventType. A publish attempted while the
// broker is unreachable fails with errs.ErrConnectivity; there is no local
// queueing or outbox, so callers own the fallback.
type EventPublisher interface {
	Publish(ctx context.Context, eventType EventType, payload any) error
}

// OrderEventPayload is the broker payload for order.created, order.updated,
// and order.assigned events.
type OrderEventPayload struct {
	OrderID        string   `json:"orderId"`
	Code           string   `json:"code"`
	Status         string   `json:"status"`
	PreviousStatus string   `json:"previousStatus,omitempty"`
	CourierID      string   `json:"courierId,omitempty"`
	Total          float64  `json:"total"`
	DeliveryFee    float64  `json:"deliveryFee"`
	Address        string   `json:"address"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	AuditLog       []string `json:"auditLog,omitempty"`
}

// RiderLocationPayload is the broker payload for rider.location events.
type RiderLocationPayload struct {
	CourierID string  `json:"courierId"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}
