package notify

import (
	"sync"

	"github.com/gorilla/websocket"
)

// client wraps a connection with its write lock. gorilla/websocket
// allows at most one concurrent writer per connection, so every
// WriteJSON must hold mu.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(message)
}

// Hub tracks one websocket connection per user. A reconnect replaces
// the previous connection.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[int64]*client),
	}
}

func (h *Hub) Register(userID int64, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, exists := h.clients[userID]; exists {
		_ = old.conn.Close()
	}

	h.clients[userID] = &client{conn: conn}
}

func (h *Hub) Unregister(userID int64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if c, exists := h.clients[userID]; exists {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}

// SendToUser returns false when the user has no live connection; the
// event is dropped, notifications are best effort.
func (h *Hub) SendToUser(userID int64, message interface{}) bool {
	h.mutex.RLock()
	c, exists := h.clients[userID]
	h.mutex.RUnlock()

	if !exists {
		return false
	}

	if err := c.send(message); err != nil {
		h.Unregister(userID)
		return false
	}

	return true
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for userID, c := range h.clients {
		_ = c.conn.Close()
		delete(h.clients, userID)
	}
}
