// Package realtime implements the WebSocket relay: a hub owning the table of
// open connections and per-connection read/write pumps. Connections accept
// framed task messages and receive framed results on the same socket; the hub
// holds no session continuity across reconnects.
package realtime

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/devcopilot/assistant-api/internal/api/metrics"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

// Hub owns the lifetime of every realtime connection: insert on open, remove
// on close. Nothing outside this package touches the connection table.
type Hub struct {
	gateway ports.Gateway
	log     zerolog.Logger

	register   chan *Client
	unregister chan *Client
	clients    map[uuid.UUID]*Client
}

func NewHub(gateway ports.Gateway, log zerolog.Logger) *Hub {
	return &Hub{
		gateway:    gateway,
		log:        log,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
	}
}

// Run processes registration and unregistration until ctx is cancelled, then
// closes every remaining connection.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for id, client := range h.clients {
				close(client.send)
				delete(h.clients, id)
			}
			metrics.RealtimeConnections.Set(0)
			return

		case client := <-h.register:
			h.clients[client.id] = client
			metrics.RealtimeConnections.Set(float64(len(h.clients)))
			h.log.Info().
				Str("connection_id", client.id.String()).
				Str("username", client.username).
				Msg("realtime connection opened")

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				delete(h.clients, client.id)
				close(client.send)
				metrics.RealtimeConnections.Set(float64(len(h.clients)))
				h.log.Info().
					Str("connection_id", client.id.String()).
					Msg("realtime connection closed")
			}
		}
	}
}
