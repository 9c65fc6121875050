package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/surrealdb/surrealdb.go"

	"github.com/mwhitaker/blenny/internal/app"
	"github.com/mwhitaker/blenny/internal/config"
	"github.com/mwhitaker/blenny/internal/database"
	"github.com/mwhitaker/blenny/internal/domain"
	"github.com/mwhitaker/blenny/internal/email"
	"github.com/mwhitaker/blenny/internal/handlers"
	"github.com/mwhitaker/blenny/internal/hub"
	"github.com/mwhitaker/blenny/internal/logging"
	appmiddleware "github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/module"
	"github.com/mwhitaker/blenny/internal/pubsub"
	"github.com/mwhitaker/blenny/internal/registry"
	"github.com/mwhitaker/blenny/internal/rendering"
	appsession "github.com/mwhitaker/blenny/internal/session"
	"github.com/mwhitaker/blenny/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E   *echo.Echo
	DB  *surrealdb.DB
	Cfg config.Provider

	userStore   domain.UserRepository
	sessions    *appsession.Manager
	emailer     domain.EmailSender
	bridge      *pubsub.WatermillBridge
	socketHub   *hub.Hub
	modules     []module.Module
	registry    *registry.Registry
	stopTracing func()
}

// New creates a new Server instance wired to the real infrastructure:
// SurrealDB for users, an in-memory watermill bus for events, and one hub
// for the browser sockets.
func New() *Server {
	cfg := config.New()
	logging.New(cfg.GetLogFormat())

	db, err := database.NewDB(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	tracer, stopTracing, err := pubsub.SetupOTel(context.Background(), pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	bridge := pubsub.NewWatermillBridgeWithTracer(tracer)

	emailer, err := email.NewEmailService(cfg)
	if err != nil {
		slog.Error("Failed to initialize email service", "error", err)
		os.Exit(1)
	}

	userStore := database.NewSurrealUserStore(db, cfg.GetDBNs(), cfg.GetDBDb())
	sessionManager := appsession.NewManager(userStore, bridge)
	socketHub := hub.NewHub()

	e := newEcho(cfg.GetSessionSecret())

	modules := app.NewModules(app.Dependencies{
		Sessions:   sessionManager,
		Publisher:  bridge,
		Subscriber: bridge,
		Hub:        socketHub,
	})

	return &Server{
		E:           e,
		DB:          db,
		Cfg:         cfg,
		userStore:   userStore,
		sessions:    sessionManager,
		emailer:     emailer,
		bridge:      bridge,
		socketHub:   socketHub,
		modules:     modules,
		registry:    registry.New(cfg),
		stopTracing: stopTracing,
	}
}

// newEcho assembles the Echo instance with the middleware and rendering
// stack every route relies on. Kept separate from New so tests can build
// the same instance without touching the database or the environment.
func newEcho(sessionSecret string) *echo.Echo {
	e := echo.New()
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(appmiddleware.Logger)
	e.Use(middleware.Recover())
	setupErrorHandling(e)

	// Configure and use session middleware
	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(cookieStore))

	// Serve the embedded static assets.
	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()

	return e
}

// setupErrorHandling installs an HTTP error handler that logs unhandled
// errors together with a stack trace before delegating to Echo's default
// handler for the response. Expected errors (echo.HTTPError) pass through
// without the noise.
func setupErrorHandling(e *echo.Echo) {
	defaultHandler := e.HTTPErrorHandler
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var httpErr *echo.HTTPError
		if !errors.As(err, &httpErr) {
			slog.Error("Internal Server Error (Unhandled)",
				"error", err,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}
		defaultHandler(err, c)
	}
}

// UserStore is a getter for the server's user store, useful for testing.
func (s *Server) UserStore() domain.UserRepository {
	return s.userStore
}

// Sessions is a getter for the server's session manager, useful for testing.
func (s *Server) Sessions() *appsession.Manager {
	return s.sessions
}
