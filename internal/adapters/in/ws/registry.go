package ws

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// Conn is the write surface of one live connection. Implementations must be
// safe for concurrent writes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// Registry owns the two live-connection maps: courier ID to connection, and
// the dispatcher connection set. It is the only holder of this state; all
// access goes through its methods.
//
// The registry is process-local. In a multi-instance deployment a courier's
// connection lives on one instance only, so delivery from another instance
// would need a shared store plus fan-out; that is out of scope here.
type Registry struct {
	mu          sync.RWMutex
	couriers    map[kernel.UUID]Conn
	dispatchers map[Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		couriers:    make(map[kernel.UUID]Conn),
		dispatchers: make(map[Conn]struct{}),
	}
}

// RegisterCourier maps a courier to a connection. Last writer wins: a
// re-register from a new connection silently replaces the previous one,
// which covers app restarts and reconnects.
func (r *Registry) RegisterCourier(courierID kernel.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.couriers[courierID] = conn
}

// UnregisterCourier removes the courier's mapping only if it still points at
// conn. The guard keeps a stale connection's deferred cleanup from tearing
// down the replacement that registered in the meantime.
func (r *Registry) UnregisterCourier(courierID kernel.UUID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.couriers[courierID]; ok && current == conn {
		delete(r.couriers, courierID)
	}
}

// CourierConn returns the courier's current connection, if any.
func (r *Registry) CourierConn(courierID kernel.UUID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.couriers[courierID]
	return conn, ok
}

// RegisterDispatcher adds a connection to the dispatcher set.
func (r *Registry) RegisterDispatcher(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatchers[conn] = struct{}{}
}

// UnregisterDispatcher removes a connection from the dispatcher set.
func (r *Registry) UnregisterDispatcher(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.dispatchers, conn)
}

// Dispatchers returns a snapshot of the dispatcher set. Iterating the
// snapshot outside the lock keeps slow writes from blocking registration.
func (r *Registry) Dispatchers() []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conns := make([]Conn, 0, len(r.dispatchers))
	for conn := range r.dispatchers {
		conns = append(conns, conn)
	}
	return conns
}
