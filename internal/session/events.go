package session

import (
	"github.com/mwhitaker/blenny/internal/pubsub"
)

// LoggedIn is the payload published when a session is established.
type LoggedIn struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Timestamp string `json:"timestamp"`
}

// LoggedOut is the payload published when a session is revoked. Subscribers
// use it to tear down per-session state and to notify the user's open tabs.
type LoggedOut struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
	Timestamp string `json:"timestamp"`
}

var (
	// TopicLoggedIn fires after a user signs in and a session is registered.
	TopicLoggedIn = pubsub.NewEvent[LoggedIn]("session.logged_in", "Published when a user session is established")

	// TopicLoggedOut fires after a session is revoked, whether from the
	// settings menu, the logout route, or an administrative removal.
	TopicLoggedOut = pubsub.NewEvent[LoggedOut]("session.logged_out", "Published when a user session is revoked")
)
