package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwhitaker/blenny/internal/avatar"
)

var (
	avatarSize int
	avatarSVG  bool
)

var avatarCmd = &cobra.Command{
	Use:   "avatar NAME",
	Short: "Derive the avatar badge for a display name",
	Long: `Prints the deterministic badge identity (initials and background color)
the application derives from a display name. With --svg the full badge
image is written to stdout instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		label := avatar.Derive(name)

		if avatarSVG {
			if err := avatar.Badge(label, name, avatarSize).Render(os.Stdout); err != nil {
				log.Fatalf("Failed to render badge: %v", err)
			}
			fmt.Println()
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Name:\t%s\n", name)
		fmt.Fprintf(w, "Initials:\t%s\n", label.Initials)
		fmt.Fprintf(w, "Color:\t%s\n", label.Color)
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(avatarCmd)
	avatarCmd.Flags().IntVar(&avatarSize, "size", avatar.DefaultSize, "badge edge length in pixels")
	avatarCmd.Flags().BoolVar(&avatarSVG, "svg", false, "write the badge SVG to stdout")
}
