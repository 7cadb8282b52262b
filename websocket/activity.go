// Package websocket streams activity events (assignments, returns,
// request decisions) to connected HR dashboards.
package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ActivityEvent is a real-time notification scoped to one HR principal.
type ActivityEvent struct {
	Type      string      `json:"type"` // ASSET_ASSIGNED, ASSET_RETURNED, REQUEST_SUBMITTED, REQUEST_PROCESSED
	Data      interface{} `json:"data,omitempty"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Verifier matches middleware.Verifier; websocket clients authenticate
// with a token query param because browsers cannot set headers on
// upgrade requests.
type Verifier interface {
	Verify(bearerCredential string) (string, error)
}

type Hub struct {
	verifier Verifier
	upgrader websocket.Upgrader

	mutex   sync.Mutex
	clients map[string]map[*client]bool // hrEmail -> connections
}

func NewHub(verifier Verifier) *Hub {
	return &Hub{
		verifier: verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[string]map[*client]bool),
	}
}

// ServeHTTP upgrades the connection and registers it under the verified
// principal email.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	email, err := h.verifier.Verify(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for %s: %v", email, err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}

	h.mutex.Lock()
	if h.clients[email] == nil {
		h.clients[email] = make(map[*client]bool)
	}
	h.clients[email][c] = true
	h.mutex.Unlock()

	log.Printf("websocket connected: %s", email)

	go h.writeLoop(c)
	go h.readLoop(email, c)
}

func (h *Hub) writeLoop(c *client) {
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

// readLoop exists to detect disconnects; inbound messages are ignored.
func (h *Hub) readLoop(email string, c *client) {
	defer func() {
		h.mutex.Lock()
		if conns, ok := h.clients[email]; ok {
			if _, registered := conns[c]; registered {
				delete(conns, c)
				close(c.send)
			}
			if len(conns) == 0 {
				delete(h.clients, email)
			}
		}
		h.mutex.Unlock()
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends an event to every connection of one HR principal.
// Slow consumers are dropped rather than blocking the caller.
func (h *Hub) Broadcast(hrEmail string, event ActivityEvent) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	conns, ok := h.clients[hrEmail]
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal activity event: %v", err)
		return
	}

	for c := range conns {
		select {
		case c.send <- data:
		default:
			close(c.send)
			delete(conns, c)
		}
	}
	if len(conns) == 0 {
		delete(h.clients, hrEmail)
	}
}

func (h *Hub) SendAssetAssigned(hrEmail string, assignment interface{}, actor string) {
	h.Broadcast(hrEmail, ActivityEvent{
		Type:      "ASSET_ASSIGNED",
		Data:      assignment,
		Actor:     actor,
		Timestamp: time.Now(),
	})
}

func (h *Hub) SendAssetReturned(hrEmail string, assignment interface{}, actor string) {
	h.Broadcast(hrEmail, ActivityEvent{
		Type:      "ASSET_RETURNED",
		Data:      assignment,
		Actor:     actor,
		Timestamp: time.Now(),
	})
}

func (h *Hub) SendRequestSubmitted(hrEmail string, request interface{}, actor string) {
	h.Broadcast(hrEmail, ActivityEvent{
		Type:      "REQUEST_SUBMITTED",
		Data:      request,
		Actor:     actor,
		Timestamp: time.Now(),
	})
}

func (h *Hub) SendRequestProcessed(hrEmail string, request interface{}, actor string) {
	h.Broadcast(hrEmail, ActivityEvent{
		Type:      "REQUEST_PROCESSED",
		Data:      request,
		Actor:     actor,
		Timestamp: time.Now(),
	})
}
