package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blenny-cli",
	Short: "Blenny CLI tool",
	Long: `Blenny CLI is the command-line companion to the Blenny web application.

Available commands:
  serve        Run the web server
  avatar       Derive the avatar badge for a display name
  topics       Inspect the event topics the application publishes
  new-module   Scaffold a new application module

Use "blenny-cli [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
