package http

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func (c *client) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- data:
	default:
		// Slow consumer; drop rather than block the sender.
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub tracks live connections by connection id and implements app.Sender.
// Each connection has a single writer goroutine fed by a buffered queue;
// messages to a full queue or a gone connection are dropped, matching the
// fire-and-forget broadcast contract.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Register starts the writer loop for a freshly upgraded connection.
func (h *Hub) Register(connectionID string, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, 32)}

	h.mu.Lock()
	h.clients[connectionID] = c
	h.mu.Unlock()

	go func() {
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("ws write to %s: %v", connectionID, err)
				return
			}
		}
	}()
}

// Unregister drops the connection and stops its writer.
func (h *Hub) Unregister(connectionID string) {
	h.mu.Lock()
	c, ok := h.clients[connectionID]
	if ok {
		delete(h.clients, connectionID)
	}
	h.mu.Unlock()

	if ok {
		c.close()
		_ = c.conn.Close()
	}
}

// Send delivers one named event to one connection, best-effort.
func (h *Hub) Send(connectionID, event string, payload any) {
	h.mu.RLock()
	c, ok := h.clients[connectionID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(outboundMessage{Type: event, Payload: payload})
	if err != nil {
		log.Printf("ws marshal %s: %v", event, err)
		return
	}
	c.enqueue(data)
}
