package realtime

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/session"
)

// Handler serves the session WebSocket.
type Handler struct {
	hub *hub.Hub
}

// NewHandler creates the realtime handler.
func NewHandler(h *hub.Hub) *Handler {
	return &Handler{hub: h}
}

// ServeWS upgrades the request and attaches the connection to the hub under
// the caller's session and user, so session-scoped notifications reach it.
func (h *Handler) ServeWS(c echo.Context) error {
	sess, ok := c.Get(middleware.SessionContextKey).(*session.Session)
	if !ok || sess == nil {
		slog.Error("Could not get session from context for WebSocket connection")
		return echo.NewHTTPError(http.StatusUnauthorized, "no active session")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		// In a production deployment, check the Origin header here.
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return c.String(http.StatusInternalServerError, "Failed to upgrade to WebSocket")
	}

	entry := &hub.Client{
		ID:        uuid.NewString(),
		SessionID: sess.ID,
		UserID:    sess.UserID(),
		Send:      make(chan []byte, 256),
	}
	h.hub.Register(entry)

	client := &Client{conn: conn, hub: h.hub, entry: entry}
	go client.writePump()
	go client.readPump()

	return nil
}
