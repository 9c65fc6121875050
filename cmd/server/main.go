package main

import (
	"github.com/mwhitaker/blenny/internal/server"
)

func main() {
	// Create a new server instance.
	s := server.New()

	// Register all application routes and boot the modules.
	s.RegisterRoutes()

	// Start the server and block until shutdown.
	s.Start(s.Cfg.GetAddr())
}
