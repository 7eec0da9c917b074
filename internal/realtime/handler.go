package realtime

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// Editor extensions connect from arbitrary origins.
		return true
	},
}

// Handler upgrades GET /ws/realtime to a WebSocket connection and hands it
// to the hub. Identity, when present, was resolved by the optional auth
// middleware upstream.
type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Serve(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "websocket upgrade failed")
	}

	username, _ := c.Get("username").(string)
	userID, _ := c.Get("user_id").(string)

	client := newClient(h.hub, conn, username, userID)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()

	return nil
}
