// Package cli implements hbsctl, the admin command line for the booking
// service.
package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "HBS_API_URL"
)

type globalOptions struct {
	apiURL  string
	timeout time.Duration
}

func NewRoot() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "hbsctl",
		Short:         "Hotel booking service admin CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	apiURL := os.Getenv(envAPIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "booking API base URL (env "+envAPIURL+")")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "overall command timeout")

	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newClearCmd(opts))
	cmd.AddCommand(newRoomsCmd(opts))
	cmd.AddCommand(newBookingsCmd(opts))
	cmd.AddCommand(newHotelsCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}
