package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types
const (
	EventChange  = "change"
	EventWelcome = "welcome"
)

// Hub maintains the set of active clients and broadcasts change events to them
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Channel for outbound events
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	logger zerolog.Logger
}

// Event is one message pushed to dashboards
type Event struct {
	// Type of event: "change", "welcome"
	Type string `json:"type"`

	// Collection is the feature key of the changed collection
	Collection string `json:"collection,omitempty"`

	// Op is the store operation: replace, append, upsert, delete
	Op string `json:"op,omitempty"`

	// ID of the affected record, empty for whole-collection operations
	ID string `json:"id,omitempty"`

	// Count is the collection size after the change
	Count int `json:"count"`

	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// Run handles client registrations and broadcasts until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()

	h.logger.Info().
		Str("clientID", client.id).
		Strs("collections", client.topicList()).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		h.logger.Info().
			Str("clientID", client.id).
			Str("addr", client.remoteAddr()).
			Msg("Client unregistered")
	}
}

// broadcastEvent sends an event to every client watching its collection. Clients
// whose buffer is full are dropped.
func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("collection", event.Collection).
			Msg("Failed to marshal event for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client := range h.clients {
		if !client.watches(event.Collection) {
			continue
		}
		select {
		case client.send <- data:
			delivered++
		default:
			// slow or gone, disconnect it
			delete(h.clients, client)
			close(client.send)
			h.logger.Warn().Str("clientID", client.id).Msg("Dropped slow client")
		}
	}

	h.logger.Debug().
		Str("collection", event.Collection).
		Str("op", event.Op).
		Int("clientCount", delivered).
		Msg("Event broadcasted")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
}

// Broadcast queues an event without blocking; it is dropped when the queue is full
func (h *Hub) Broadcast(event *Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Warn().Str("collection", event.Collection).Msg("Broadcast queue full, event dropped")
	}
}

// ClientsCount returns the number of connected clients
func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.clients)
}
