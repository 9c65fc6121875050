package realtime

import (
	"context"

	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/session"
)

// LogoutMessage is the control frame pushed to a revoked session's tabs.
// session.js navigates to the login page when it sees it.
const LogoutMessage = "logged-out"

// Notifier forwards session lifecycle events to the connected sockets.
type Notifier struct {
	hub *hub.Hub
}

// NewNotifier creates a notifier pushing into the given hub.
func NewNotifier(h *hub.Hub) *Notifier {
	return &Notifier{hub: h}
}

// Start subscribes to logout events. Each one notifies exactly the revoked
// session's sockets, then disconnects them; the queued control frame is
// flushed before each connection is torn down.
func (n *Notifier) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return pubsub.Subscribe(ctx, sub, session.TopicLoggedOut, func(ctx context.Context, ev session.LoggedOut) error {
		n.hub.NotifySession(ev.SessionID, []byte(LogoutMessage))
		n.hub.DisconnectSession(ev.SessionID)
		return nil
	})
}
