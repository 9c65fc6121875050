package hub

import (
	"log/slog"
	"sync"
)

// Client represents a single connected subscriber, usually one browser tab's
// WebSocket. Send is a buffered channel of outbound messages; the owning
// connection is responsible for draining it.
type Client struct {
	ID        string
	SessionID string
	UserID    string
	Send      chan []byte
}

// Hub tracks live clients and routes messages to them. Clients are indexed
// by session and by user so a logout can target exactly the tabs that belong
// to the revoked session.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	sessions map[string]map[string]bool // sessionID -> set of clientIDs
	users    map[string]map[string]bool // userID -> set of clientIDs
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients:  make(map[string]*Client),
		sessions: make(map[string]map[string]bool),
		users:    make(map[string]map[string]bool),
	}
}

// Register adds a client to the hub's indexes.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client

	if client.SessionID != "" {
		if _, ok := h.sessions[client.SessionID]; !ok {
			h.sessions[client.SessionID] = make(map[string]bool)
		}
		h.sessions[client.SessionID][client.ID] = true
	}

	if client.UserID != "" {
		if _, ok := h.users[client.UserID]; !ok {
			h.users[client.UserID] = make(map[string]bool)
		}
		h.users[client.UserID][client.ID] = true
	}

	slog.Info("New subscriber registered", "client_id", client.ID, "total_subscribers", len(h.clients))
}

// Unregister removes a client and closes its send channel. Unknown IDs are
// ignored so disconnect paths can call it unconditionally.
func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	delete(h.clients, clientID)

	if client.SessionID != "" && h.sessions[client.SessionID] != nil {
		delete(h.sessions[client.SessionID], clientID)
		if len(h.sessions[client.SessionID]) == 0 {
			delete(h.sessions, client.SessionID)
		}
	}

	if client.UserID != "" && h.users[client.UserID] != nil {
		delete(h.users[client.UserID], clientID)
		if len(h.users[client.UserID]) == 0 {
			delete(h.users, client.UserID)
		}
	}

	// Close the send channel to terminate the connection's write loop.
	close(client.Send)
	slog.Info("Subscriber unregistered", "client_id", clientID, "total_subscribers", len(h.clients))
}

// NotifySession sends a message to every client attached to the session.
func (h *Hub) NotifySession(sessionID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for clientID := range h.sessions[sessionID] {
		h.send(h.clients[clientID], message)
	}
}

// DisconnectSession unregisters every client attached to the session. Each
// connection's write loop still flushes messages queued before the call, so
// a notify-then-disconnect sequence delivers the notification.
func (h *Hub) DisconnectSession(sessionID string) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sessions[sessionID]))
	for clientID := range h.sessions[sessionID] {
		ids = append(ids, clientID)
	}
	h.mu.RUnlock()

	for _, clientID := range ids {
		h.Unregister(clientID)
	}
}

// NotifyUser sends a message to every client belonging to the user, across
// all of their sessions.
func (h *Hub) NotifyUser(userID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for clientID := range h.users[userID] {
		h.send(h.clients[clientID], message)
	}
}

// Broadcast sends a message to every connected client.
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	slog.Debug("Broadcasting message", "recipient_count", len(h.clients))
	for _, client := range h.clients {
		h.send(client, message)
	}
}

// Count reports the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// send delivers without blocking. A full buffer means the client is lagging
// or dead; the message is dropped and the read loop will unregister it.
func (h *Hub) send(client *Client, message []byte) {
	if client == nil {
		return
	}
	select {
	case client.Send <- message:
	default:
		slog.Warn("Client send channel full, dropping message", "client_id", client.ID)
	}
}
