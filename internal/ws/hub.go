package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Client is the part of *websocket.Conn the hub needs.
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Event is broadcast to every connected dashboard.
type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Publisher is what services depend on; Hub is the production implementation.
type Publisher interface {
	Publish(event Event)
}

type Hub struct {
	clients    map[Client]bool
	register   chan Client
	unregister chan Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[Client]bool),
		register:   make(chan Client),
		unregister: make(chan Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Run serves registrations and broadcasts until ctx is cancelled, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				c.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
			slog.Debug("ws client connected", "clients", h.ClientCount())

		case c := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.Close()
			}
			h.mutex.Unlock()

		case message := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients {
				if err := c.WriteMessage(websocket.TextMessage, message); err != nil {
					c.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		c.Close()
	}
}

func (h *Hub) Unregister(c Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Publish never blocks the caller: when the buffer is full or the hub stopped, the event is dropped.
func (h *Hub) Publish(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		slog.Error("ws marshal event", "type", event.Type, "action", event.Action, "error", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		slog.Warn("ws broadcast buffer full, dropping event", "action", event.Action)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Serve is the websocket route body: register, drain reads until the peer goes away.
func (h *Hub) Serve(c *websocket.Conn) {
	h.Register(c)
	defer h.Unregister(c)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

// Nop discards events; used where no hub is wired.
type Nop struct{}

func (Nop) Publish(Event) {}
