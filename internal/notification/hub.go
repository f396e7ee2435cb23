package notification

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"ward26-notification-service/internal/logging"
	"ward26-notification-service/internal/models"
)

const maxHubConnections = 10

// Hub fans delivery reports out to connected diagnostic websocket clients.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	logger *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
	}
}

// Add registers a client connection. The hub closes connections beyond its
// limit rather than queueing them.
func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.conns) >= maxHubConnections {
		h.logger.Warnf("Max websocket connections reached, rejecting client")
		_ = conn.Close()
		return
	}
	h.conns[conn] = true
	h.logger.Infof("Added websocket client (total: %d)", len(h.conns))
}

// Remove drops a client connection.
func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.conns[conn]; exists {
		delete(h.conns, conn)
		h.logger.Infof("Removed websocket client (remaining: %d)", len(h.conns))
	}
}

// Broadcast pushes a delivery report to every connected client, dropping
// connections that fail to write. Safe to call on a nil hub.
func (h *Hub) Broadcast(report *models.DeliveryReport) {
	if h == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		h.logger.Errorf("Failed to encode delivery report for broadcast: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Errorf("Failed to push report to websocket client: %v", err)
			delete(h.conns, conn)
			_ = conn.Close()
		}
	}
}
