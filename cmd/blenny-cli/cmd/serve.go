package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mwhitaker/blenny/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Blenny web server",
	Long: `Starts the web server with the configuration from the environment
(or a .env file) and blocks until an interrupt arrives.`,
	Run: func(cmd *cobra.Command, args []string) {
		s := server.New()
		s.RegisterRoutes()

		addr := serveAddr
		if addr == "" {
			addr = s.Cfg.GetAddr()
		}
		s.Start(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to BLENNY_ADDR)")
}
