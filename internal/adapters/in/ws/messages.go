// Package ws implements the live-connection side of the engine: a single
// websocket endpoint speaking a closed set of JSON message types, the
// in-memory connection registry, and the notification hub that routes
// pushes to the right connection.
package ws

// MessageType tags every frame on the socket. The set is closed and handled
// exhaustively; an unknown inbound type is logged and ignored rather than
// dispatched dynamically.
type MessageType string

// Inbound message types, sent by courier apps and dispatcher consoles.
const (
	MessageRegisterCourier      MessageType = "registerCourier"
	MessageUnregisterCourier    MessageType = "unregisterCourier"
	MessageRegisterDispatcher   MessageType = "registerDispatcher"
	MessageUnregisterDispatcher MessageType = "unregisterDispatcher"

	// Client-reported delivery progress. Relayed to dispatcher consoles
	// only; the order aggregate is not touched (a separate system owns
	// post-assignment lifecycle state).
	MessageOrderAccepted  MessageType = "orderAccepted"
	MessageOrderRejected  MessageType = "orderRejected"
	MessageOrderDelivered MessageType = "orderDelivered"
)

// Outbound message types, pushed by the engine.
const (
	MessageNewOrder              MessageType = "newOrder"
	MessageOrderAssigned         MessageType = "orderAssigned"
	MessageCourierLocationUpdate MessageType = "courierLocationUpdate"
	MessageCourierConnected      MessageType = "courierConnected"
	MessageCourierDisconnected   MessageType = "courierDisconnected"
)

// InboundMessage is the envelope for every client frame.
type InboundMessage struct {
	Type      MessageType `json:"type"`
	CourierID string      `json:"courierId,omitempty"`
	OrderID   string      `json:"orderId,omitempty"`
	// Reason optionally accompanies orderRejected.
	Reason string `json:"reason,omitempty"`
}

// OutboundMessage is the envelope for every pushed frame.
type OutboundMessage struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload,omitempty"`
}

// PresencePayload accompanies courierConnected / courierDisconnected frames.
type PresencePayload struct {
	CourierID string `json:"courierId"`
}

// OrderEventPayload accompanies relayed delivery-progress frames.
type OrderEventPayload struct {
	OrderID   string `json:"orderId"`
	CourierID string `json:"courierId"`
	Reason    string `json:"reason,omitempty"`
}
