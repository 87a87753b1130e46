package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// safeConn serializes writes to one websocket connection. Reads stay on the
// single read-loop goroutine and need no locking.
type safeConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newSafeConn(conn *websocket.Conn) *safeConn {
	return &safeConn{conn: conn}
}

func (c *safeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *safeConn) ReadJSON(v any) error {
	return c.conn.ReadJSON(v)
}

func (c *safeConn) Close() error {
	return c.conn.Close()
}

// Server upgrades HTTP requests to websocket connections and runs the read
// loop for each. One endpoint serves both courier apps and dispatcher
// consoles; the first register message decides which role a connection has.
type Server struct {
	upgrader websocket.Upgrader
	registry *Registry
	hub      *Hub
	log      *slog.Logger
}

// NewServer creates a websocket server over the given registry and hub.
func NewServer(registry *Registry, hub *Hub, log *slog.Logger) *Server {
	return &Server{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		registry: registry,
		hub:      hub,
		log:      log.With("component", "ws_server"),
	}
}

// Handle is the echo handler for the websocket endpoint. It blocks for the
// lifetime of the connection and cleans the registry up when the socket
// closes, whatever state the client left behind.
func (s *Server) Handle(c echo.Context) error {
	socket, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	conn := newSafeConn(socket)
	s.readLoop(conn)
	return nil
}

func (s *Server) readLoop(conn *safeConn) {
	var courierID *kernel.UUID
	dispatcher := false

	defer func() {
		if courierID != nil {
			s.registry.UnregisterCourier(*courierID, conn)
			s.hub.BroadcastPresence(MessageCourierDisconnected, *courierID)
		}
		if dispatcher {
			s.registry.UnregisterDispatcher(conn)
		}
		_ = conn.Close()
	}()

	for {
		var msg InboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("connection read failed", "error", err)
			}
			return
		}

		switch msg.Type {
		case MessageRegisterCourier:
			id, err := kernel.UUIDFromString(msg.CourierID)
			if err != nil {
				s.log.Warn("register with invalid courier id", "courier_id", msg.CourierID)
				continue
			}
			if courierID != nil {
				s.registry.UnregisterCourier(*courierID, conn)
			}
			courierID = &id
			s.registry.RegisterCourier(id, conn)
			s.hub.BroadcastPresence(MessageCourierConnected, id)

		case MessageUnregisterCourier:
			if courierID != nil {
				s.registry.UnregisterCourier(*courierID, conn)
				s.hub.BroadcastPresence(MessageCourierDisconnected, *courierID)
				courierID = nil
			}

		case MessageRegisterDispatcher:
			dispatcher = true
			s.registry.RegisterDispatcher(conn)

		case MessageUnregisterDispatcher:
			if dispatcher {
				s.registry.UnregisterDispatcher(conn)
				dispatcher = false
			}

		case MessageOrderAccepted, MessageOrderRejected, MessageOrderDelivered:
			if courierID == nil {
				s.log.Warn("order event from unregistered connection",
					"message_type", string(msg.Type))
				continue
			}
			s.hub.RelayOrderEvent(msg.Type, msg.OrderID, *courierID, msg.Reason)

		default:
			s.log.Warn("unknown message type ignored", "message_type", string(msg.Type))
		}
	}
}
