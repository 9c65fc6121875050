package app

import (
	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/session"
)

// Dependencies holds the core services that are required by the application's
// modules. The server entrypoint builds one of these and hands it to
// NewModules to wire up the feature set.
type Dependencies struct {
	Sessions   *session.Manager
	Publisher  pubsub.Publisher
	Subscriber pubsub.Subscriber
	Hub        *hub.Hub
}
