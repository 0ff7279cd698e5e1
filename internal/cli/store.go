package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"hotelbooking/internal/data/service"
	"hotelbooking/internal/store/factory"
	"hotelbooking/pkg/config"
)

const cliServiceName = "hbsctl"

func newMigrateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema for the configured store driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(cliServiceName)
			defer cfg.GracefulShutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			if err := factory.Migrate(ctx, cfg); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s store\n", cfg.StoreDriver)
			return nil
		},
	}
}

func newSeedCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default room types, hotels and rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDataService(cmd, opts, func(ctx context.Context, svc service.DataService) error {
				summary, err := svc.Seed(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %d room types, %d hotels, %d rooms\n",
					summary.RoomTypes, len(summary.Hotels), summary.Rooms)
				for _, h := range summary.Hotels {
					fmt.Fprintf(cmd.OutOrStdout(), "  %d\t%s\n", h.ID, h.Name)
				}
				return nil
			})
		},
	}
}

func newClearCmd(opts *globalOptions) *cobra.Command {
	var yes bool
	c := &cobra.Command{
		Use:   "clear",
		Short: "Delete all bookings, rooms and hotels",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear data without --yes")
			}
			return withDataService(cmd, opts, func(ctx context.Context, svc service.DataService) error {
				if err := svc.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "cleared bookings, rooms and hotels")
				return nil
			})
		},
	}
	c.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return c
}

func withDataService(cmd *cobra.Command, opts *globalOptions, fn func(context.Context, service.DataService) error) error {
	cfg := config.Load(cliServiceName)
	defer cfg.GracefulShutdown()

	st, err := factory.New(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()
	defer st.Close(ctx)

	return fn(ctx, service.NewDataService(st, cfg))
}
