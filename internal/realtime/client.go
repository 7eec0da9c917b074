package realtime

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/devcopilot/assistant-api/internal/api/metrics"
	"github.com/devcopilot/assistant-api/internal/core/ports"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size. Frames carry whole source files.
	maxMessageSize = 256 * 1024

	// Bound on a single gateway call triggered by a frame.
	taskTimeout = 60 * time.Second
)

// Client is one realtime connection. At most one task is in flight per
// connection: readPump dispatches frames serially, so result order matches
// request order.
type Client struct {
	id       uuid.UUID
	username string
	userID   string

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(hub *Hub, conn *websocket.Conn, username, userID string) *Client {
	return &Client{
		id:       uuid.New(),
		username: username,
		userID:   userID,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 16),
	}
}

// readPump pumps frames from the socket through the gateway. It exits on
// socket close or read error, unregistering the client. Frames are handled
// against a fresh context: the upgrade request's context dies as soon as the
// HTTP handler returns.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn().Err(err).Str("connection_id", c.id.String()).Msg("realtime read failed")
			}
			return
		}
		c.handleFrame(raw)
	}
}

// writePump pumps outbound frames from the send channel to the socket and
// keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleFrame parses and dispatches one inbound frame. Malformed frames and
// task failures produce error frames; they never close the socket.
func (c *Client) handleFrame(raw []byte) {
	var frame TaskFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		metrics.RealtimeFramesTotal.WithLabelValues("invalid").Inc()
		c.sendError("invalid message format")
		return
	}

	taskCtx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	switch frame.Action {
	case ActionGenerate:
		metrics.RealtimeFramesTotal.WithLabelValues(ActionGenerate).Inc()
		if frame.Prompt == "" {
			c.sendError("prompt is required")
			return
		}
		result, err := c.hub.gateway.Generate(taskCtx, ports.GenerateInput{
			Prompt:   frame.Prompt,
			Language: frame.Language,
			Context:  frame.Context,
		})
		if err != nil {
			c.sendError("code generation failed")
			return
		}
		c.sendResult(TypeGeneration, result)

	case ActionDebug:
		metrics.RealtimeFramesTotal.WithLabelValues(ActionDebug).Inc()
		if frame.Code == "" {
			c.sendError("code is required")
			return
		}
		result, err := c.hub.gateway.Debug(taskCtx, ports.CodeInput{
			Code:         frame.Code,
			Language:     frame.Language,
			ErrorMessage: frame.ErrorMessage,
		})
		if err != nil {
			c.sendError("debug analysis failed")
			return
		}
		c.sendResult(TypeDebugging, result)

	case ActionSecurity:
		metrics.RealtimeFramesTotal.WithLabelValues(ActionSecurity).Inc()
		if frame.Code == "" {
			c.sendError("code is required")
			return
		}
		result, err := c.hub.gateway.SecurityScan(taskCtx, ports.CodeInput{
			Code:     frame.Code,
			Language: frame.Language,
		})
		if err != nil {
			c.sendError("security scan failed")
			return
		}
		c.sendResult(TypeSecurity, result)

	default:
		metrics.RealtimeFramesTotal.WithLabelValues("invalid").Inc()
		c.sendError("unknown action")
	}
}

func (c *Client) sendResult(frameType string, data any) {
	payload, err := json.Marshal(ResultFrame{Type: frameType, Data: data})
	if err != nil {
		c.hub.log.Error().Err(err).Msg("marshal result frame")
		return
	}
	select {
	case c.send <- payload:
	default:
		c.hub.log.Warn().Str("connection_id", c.id.String()).Msg("send buffer full, frame dropped")
	}
}

func (c *Client) sendError(detail string) {
	payload, _ := json.Marshal(ResultFrame{Type: TypeError, Data: errorData{Detail: detail}})
	select {
	case c.send <- payload:
	default:
	}
}
