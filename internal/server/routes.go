package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/mwhitaker/blenny/internal/handlers"
	"github.com/mwhitaker/blenny/internal/middleware"
	"github.com/mwhitaker/blenny/internal/storage"
)

// RegisterRoutes sets up all the application routes and boots the feature
// modules onto the authenticated /app group.
func (s *Server) RegisterRoutes() {
	// Create instances of all application handlers.
	homeHandler := handlers.NewHomeHandler(s.sessions)
	authHandler := handlers.NewAuthHandler(s.userStore, s.sessions, s.emailer, s.Cfg.GetAppBaseURL())
	avatarHandler := handlers.NewAvatarHandler(storage.NewDirStore(s.Cfg.GetAvatarCacheDir()))
	rateLimiter := middleware.RateLimiter()

	// Public routes.
	s.E.GET("/", homeHandler.HomeGet)

	s.E.GET("/auth/register", authHandler.RegisterGetHandler)
	s.E.POST("/auth/register", authHandler.RegisterPost, rateLimiter)

	s.E.GET("/auth/login", authHandler.LoginGetHandler)
	s.E.POST("/auth/login", authHandler.LoginPost, rateLimiter)
	s.E.GET("/auth/logout", authHandler.Logout)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Everything under /app requires a live session.
	appGroup := s.E.Group("/app", middleware.Auth(s.sessions))
	appGroup.GET("/avatar.svg", avatarHandler.AvatarSVG)

	if err := s.bootModules(context.Background(), appGroup); err != nil {
		slog.Error("Failed to boot modules", "error", err)
		os.Exit(1)
	}
}

// bootModules runs the two-phase module startup: every module registers its
// services first, then every module boots its routes and workers.
func (s *Server) bootModules(ctx context.Context, g *echo.Group) error {
	for _, mod := range s.modules {
		if err := mod.Register(s.registry); err != nil {
			return err
		}
	}
	for _, mod := range s.modules {
		if err := mod.Boot(ctx, g, s.registry); err != nil {
			return err
		}
	}
	return nil
}
