package websocket

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler upgrades dashboard connections onto the change feed
type Handler struct {
	hub    *Hub
	logger zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection handles GET /ws/changes?collections=students,salaries. Without
// the parameter every collection is watched.
func (h *Handler) HandleConnection(c *gin.Context) {
	topics := make(map[string]bool)
	for _, name := range strings.Split(c.Query("collections"), ",") {
		if name = strings.TrimSpace(name); name != "" {
			topics[name] = true
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		id:     uuid.NewString(),
		topics: topics,
		logger: h.logger,
	}

	// queued before registration so it is the first frame the client reads
	if welcome, err := json.Marshal(&Event{Type: EventWelcome, Timestamp: time.Now()}); err == nil {
		client.send <- welcome
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
