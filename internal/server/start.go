package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Start runs the HTTP server and blocks until a shutdown signal arrives,
// then tears the application down in reverse dependency order: modules
// first, then the event bus, tracing, the database, and finally Echo.
func (s *Server) Start(addr string) {
	go func() {
		if err := s.E.Start(addr); err != nil && err != http.ErrServerClosed {
			s.E.Logger.Fatalf("shutting down the server: %v", err)
		}
	}()

	waitForShutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, mod := range s.modules {
		if err := mod.Shutdown(ctx); err != nil {
			slog.Error("Module shutdown failed", "module", mod.Name(), "error", err)
		}
	}

	if err := s.bridge.Close(); err != nil {
		slog.Error("Failed to close event bus", "error", err)
	}
	s.stopTracing()

	s.DB.Close(ctx)
	if err := s.E.Shutdown(ctx); err != nil {
		s.E.Logger.Fatal(err)
	}
}
