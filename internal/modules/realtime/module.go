package realtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/module"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/registry"
)

// RealtimeModule implements the module.Module interface for the session
// WebSocket and the live logout push.
type RealtimeModule struct {
	module.BaseModule
	hub        *hub.Hub
	subscriber pubsub.Subscriber
}

// Dependencies holds all the services that the RealtimeModule requires.
type Dependencies struct {
	Hub        *hub.Hub
	Subscriber pubsub.Subscriber
}

// New creates a new instance of the RealtimeModule, injecting its dependencies.
func New(deps Dependencies) *RealtimeModule {
	return &RealtimeModule{
		hub:        deps.Hub,
		subscriber: deps.Subscriber,
	}
}

// Name returns the module name.
func (m *RealtimeModule) Name() string {
	return "realtime"
}

// Boot starts the logout notifier and registers the WebSocket route on the
// authenticated /app group.
func (m *RealtimeModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting RealtimeModule: setting up websocket route...")

	notifier := NewNotifier(m.hub)
	if err := notifier.Start(ctx, m.subscriber); err != nil {
		return fmt.Errorf("subscribing to session events: %w", err)
	}

	handler := NewHandler(m.hub)
	g.GET("/ws", handler.ServeWS)

	return nil
}

// Shutdown is called on application termination.
func (m *RealtimeModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down RealtimeModule...")
	return nil
}
