package usermenu

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/module"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/registry"
	"github.com/mwhitaker/blenny/internal/session"
)

// KeyControllers is where the module publishes its per-session controller
// registry for other modules and integration tests.
var KeyControllers = registry.Key[*Controllers]("usermenu.Controllers")

// UserMenuModule implements the module.Module interface for the top-bar
// user-settings menu.
type UserMenuModule struct {
	module.BaseModule
	sessions   *session.Manager
	subscriber pubsub.Subscriber

	controllers *Controllers
}

// Dependencies holds all the services that the UserMenuModule requires.
type Dependencies struct {
	Sessions   *session.Manager
	Subscriber pubsub.Subscriber
}

// New creates a new instance of the UserMenuModule, injecting its dependencies.
func New(deps Dependencies) *UserMenuModule {
	return &UserMenuModule{
		sessions:   deps.Sessions,
		subscriber: deps.Subscriber,
	}
}

// Name returns the module name.
func (m *UserMenuModule) Name() string {
	return "usermenu"
}

// Register builds the per-session controller registry and publishes it for
// other modules and tests.
func (m *UserMenuModule) Register(reg *registry.Registry) error {
	m.controllers = NewControllers(m.sessions)
	registry.Set(reg, KeyControllers, m.controllers)
	return nil
}

// Boot sets up the menu routes and the controller eviction subscriber. The
// group it receives is the authenticated /app group, so every route here can
// rely on a resolved session in the request context.
func (m *UserMenuModule) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	slog.Info("Booting UserMenuModule: setting up menu routes...")

	if err := m.controllers.Watch(ctx, m.subscriber); err != nil {
		return fmt.Errorf("subscribing to session events: %w", err)
	}

	handler := NewHandler(m.controllers)
	g.GET("/menu", handler.MenuGet)
	g.POST("/menu/open", handler.MenuOpen)
	g.POST("/menu/close", handler.MenuClose)
	g.POST("/menu/select", handler.MenuSelect)

	return nil
}

// Shutdown is called on application termination.
func (m *UserMenuModule) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down UserMenuModule...")
	return nil
}
