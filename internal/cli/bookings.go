package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"hotelbooking/pkg/client"
	"hotelbooking/pkg/model"
)

func newBookingsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Booking management",
	}
	cmd.AddCommand(newBookingsCreateCmd(opts))
	cmd.AddCommand(newBookingsGetCmd(opts))
	cmd.AddCommand(newBookingsListCmd(opts))
	return cmd
}

func newBookingsCreateCmd(opts *globalOptions) *cobra.Command {
	var req model.BookingRequest
	var idempotencyKey string
	c := &cobra.Command{
		Use:   "create",
		Short: "Book a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if idempotencyKey == "" {
				idempotencyKey = uuid.NewString()
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			resp, err := client.NewBookingClient(opts.apiURL).Create(ctx, req, idempotencyKey)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	c.Flags().Int64Var(&req.HotelID, "hotel", 0, "hotel id")
	c.Flags().Int64Var(&req.RoomID, "room", 0, "room id")
	c.Flags().StringVar(&req.CheckInDate, "check-in", "", "check-in date (YYYY-MM-DD or dd/MM/yyyy)")
	c.Flags().StringVar(&req.CheckOutDate, "check-out", "", "check-out date")
	c.Flags().IntVar(&req.NumberOfGuests, "guests", 1, "number of guests")
	c.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "retry key; generated when empty")
	for _, f := range []string{"hotel", "room", "check-in", "check-out"} {
		_ = c.MarkFlagRequired(f)
	}
	return c
}

func newBookingsGetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get REFERENCE",
		Short: "Show a booking by reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			resp, err := client.NewBookingClient(opts.apiURL).GetByReference(ctx, args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
}

func newBookingsListCmd(opts *globalOptions) *cobra.Command {
	var limit int
	var offset int64
	c := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			resp, err := client.NewBookingClient(opts.apiURL).GetAll(ctx, limit, offset)
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	c.Flags().IntVar(&limit, "limit", 10, "page size")
	c.Flags().Int64Var(&offset, "offset", 0, "page offset")
	return c
}
