package cli

import (
	"context"

	"github.com/spf13/cobra"

	"hotelbooking/pkg/client"
	"hotelbooking/pkg/model"
)

func newRoomsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Room queries",
	}
	cmd.AddCommand(newRoomsAvailableCmd(opts))
	return cmd
}

func newRoomsAvailableCmd(opts *globalOptions) *cobra.Command {
	var q model.AvailabilityQuery
	c := &cobra.Command{
		Use:   "available",
		Short: "List rooms free for a stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			resp, err := client.NewRoomClient(opts.apiURL).Available(ctx, q)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	c.Flags().StringVar(&q.CheckIn, "check-in", "", "check-in date (YYYY-MM-DD or dd/MM/yyyy)")
	c.Flags().StringVar(&q.CheckOut, "check-out", "", "check-out date")
	c.Flags().IntVar(&q.NumberOfGuests, "guests", 1, "number of guests")
	c.Flags().Int64Var(&q.HotelID, "hotel", 0, "restrict to one hotel")
	_ = c.MarkFlagRequired("check-in")
	_ = c.MarkFlagRequired("check-out")
	return c
}
