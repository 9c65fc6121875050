package realtime

import (
	"context"
	"log/slog"

	"github.com/coder/websocket"

	"github.com/mwhitaker/blenny/internal/hub"
)

// Client is a middleman between one WebSocket connection and the hub.
type Client struct {
	// The WebSocket connection.
	conn *websocket.Conn

	// The hub the client is registered with.
	hub *hub.Hub

	// The hub entry for this connection, holding the outbound channel.
	entry *hub.Client
}

// readPump drains the connection. The session socket is push-only, so inbound
// frames are discarded; reading is how we learn the socket died.
//
// The application runs one readPump per connection, which guarantees at most
// one reader on a connection.
func (c *Client) readPump() {
	// When this returns the client has disconnected, so unregister it and
	// close the connection.
	defer func() {
		c.hub.Unregister(c.entry.ID)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		_, _, err := c.conn.Read(context.Background())
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				slog.Debug("WebSocket closed normally", "client_id", c.entry.ID)
			} else {
				slog.Debug("readPump ended", "client_id", c.entry.ID, "error", err)
			}
			return
		}
	}
}

// writePump forwards hub messages to the connection. It stops when the hub
// closes the Send channel (unregistration) or a write fails.
//
// One writePump per connection guarantees at most one writer.
func (c *Client) writePump() {
	defer c.conn.Close(websocket.StatusNormalClosure, "")

	for message := range c.entry.Send {
		if err := c.conn.Write(context.Background(), websocket.MessageText, message); err != nil {
			slog.Debug("writePump ended", "client_id", c.entry.ID, "error", err)
			return
		}
	}
}
