package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X hotelbooking/internal/cli.Version=...".
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hbsctl %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
