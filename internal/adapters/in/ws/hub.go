package ws

import (
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Hub routes notifications to live connections through the registry.
// It implements ports.Notifier: direct pushes report delivery as a boolean
// (a disconnected courier is a miss, never an error) and dispatcher
// broadcasts are best-effort with per-connection failures logged.
type Hub struct {
	registry *Registry
	log      *slog.Logger
}

// NewHub creates a hub over the given registry.
func NewHub(registry *Registry, log *slog.Logger) *Hub {
	return &Hub{
		registry: registry,
		log:      log.With("component", "ws_hub"),
	}
}

// NotifyNewOrder pushes a new-order notice to one candidate courier.
func (h *Hub) NotifyNewOrder(courierID kernel.UUID, notice ports.NewOrderNotice) bool {
	return h.sendToCourier(courierID, OutboundMessage{Type: MessageNewOrder, Payload: notice})
}

// NotifyOrderAssigned pushes an assignment notice to the assigned courier.
func (h *Hub) NotifyOrderAssigned(courierID kernel.UUID, notice ports.OrderAssignedNotice) bool {
	return h.sendToCourier(courierID, OutboundMessage{Type: MessageOrderAssigned, Payload: notice})
}

// BroadcastOrderAssigned fans an assignment out to every dispatcher console.
func (h *Hub) BroadcastOrderAssigned(notice ports.OrderAssignedNotice) {
	h.broadcast(OutboundMessage{Type: MessageOrderAssigned, Payload: notice})
}

// BroadcastCourierLocation fans a position report out to every dispatcher console.
func (h *Hub) BroadcastCourierLocation(notice ports.CourierLocationNotice) {
	h.broadcast(OutboundMessage{Type: MessageCourierLocationUpdate, Payload: notice})
}

// BroadcastPresence tells dispatcher consoles a courier connected or
// disconnected.
func (h *Hub) BroadcastPresence(messageType MessageType, courierID kernel.UUID) {
	h.broadcast(OutboundMessage{
		Type:    messageType,
		Payload: PresencePayload{CourierID: courierID.String()},
	})
}

// RelayOrderEvent forwards a client-reported delivery-progress event to
// dispatcher consoles. The order aggregate is deliberately not touched.
func (h *Hub) RelayOrderEvent(messageType MessageType, orderID string, courierID kernel.UUID, reason string) {
	h.broadcast(OutboundMessage{
		Type: messageType,
		Payload: OrderEventPayload{
			OrderID:   orderID,
			CourierID: courierID.String(),
			Reason:    reason,
		},
	})
}

func (h *Hub) sendToCourier(courierID kernel.UUID, msg OutboundMessage) bool {
	conn, ok := h.registry.CourierConn(courierID)
	if !ok {
		return false
	}

	if err := conn.WriteJSON(msg); err != nil {
		h.log.Warn("courier push failed",
			"courier_id", courierID.String(),
			"message_type", string(msg.Type),
			"error", err)
		return false
	}
	return true
}

func (h *Hub) broadcast(msg OutboundMessage) {
	for _, conn := range h.registry.Dispatchers() {
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Warn("dispatcher broadcast failed",
				"message_type", string(msg.Type),
				"error", err)
		}
	}
}
