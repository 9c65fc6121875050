package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwhitaker/blenny/internal/pubsub"

	// Linked for its topic declarations; declaring an event registers it
	// in the pubsub catalog.
	_ "github.com/mwhitaker/blenny/internal/session"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Inspect the event topics the application publishes",
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all declared topics",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tPAYLOAD\tDESCRIPTION")
		fmt.Fprintln(w, "----\t-------\t-----------")

		for _, topic := range pubsub.Catalog() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", topic.Name, topic.Payload, topic.Description)
		}
		w.Flush()
	},
}

var topicsGetCmd = &cobra.Command{
	Use:   "get NAME",
	Short: "Show details about a specific topic",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		topic, ok := pubsub.Lookup(args[0])
		if !ok {
			fmt.Printf("Topic not found: %s\n", args[0])
			return
		}

		fmt.Printf("Name:        %s\n", topic.Name)
		fmt.Printf("Payload:     %s\n", topic.Payload)
		fmt.Printf("Description: %s\n", topic.Description)
	},
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.AddCommand(topicsListCmd)
	topicsCmd.AddCommand(topicsGetCmd)
}
