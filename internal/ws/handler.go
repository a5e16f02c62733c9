package ws

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler upgrades HTTP requests to live connections and hands them to
// the hub.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHandler builds the upgrade handler. Only the configured frontend
// origin may connect from a browser; non-browser clients (no Origin
// header) are always allowed.
func NewHandler(hub *Hub, frontendOrigin string, log zerolog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || frontendOrigin == "*" || origin == frontendOrigin
			},
		},
		log: log,
	}
}

// Serve handles GET /ws.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil // Upgrade already wrote the HTTP error
	}

	client := newClient(h.hub, conn)
	h.hub.Register(client)

	go client.writePump()
	// The request context dies with the upgrade; message relays need a
	// lifetime tied to the connection instead.
	go client.readPump(context.Background())
	return nil
}
