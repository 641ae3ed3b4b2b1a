// Package ws tracks live WebSocket connections for the broadcast feed.
// The hub is a standalone component: nothing currently produces broadcast
// messages, but the write path is fully specified so a live feed can be
// attached without touching the transport layer.
package ws

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn is the minimal send surface the hub needs from a connection.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub is a mutex-guarded set of live connections. Register and Unregister
// are called from per-connection handler goroutines, so every mutation of
// the set happens under the lock.
type Hub struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[Conn]struct{})}
}

// Register adds a connection to the active set.
func (h *Hub) Register(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

// Unregister removes a connection from the active set. Removing a
// connection that is not present is a no-op.
func (h *Hub) Unregister(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Len returns the number of active connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast serializes v to JSON and sends it as a text message to every
// active connection. A connection whose send fails is closed and dropped
// from the set; the broadcast continues to the remaining connections.
func (h *Hub) Broadcast(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding broadcast message: %w", err)
	}

	h.mu.Lock()
	conns := make([]Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	// Sends happen outside the lock so one slow connection cannot block
	// registration of new ones.
	for _, c := range conns {
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = c.Close()
			h.Unregister(c)
		}
	}

	return nil
}
