package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"hotelbooking/pkg/client"
)

func newHotelsCmd(opts *globalOptions) *cobra.Command {
	var limit int
	var offset int64
	cmd := &cobra.Command{
		Use:   "hotels [ID]",
		Short: "List hotels, or show one with its rooms",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			hotels := client.NewHotelClient(opts.apiURL)

			var resp *client.Response
			var err error
			if len(args) == 1 {
				id, perr := strconv.ParseInt(args[0], 10, 64)
				if perr != nil {
					return perr
				}
				resp, err = hotels.GetByID(ctx, id)
			} else {
				resp, err = hotels.GetAll(ctx, limit, offset)
			}
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "page size")
	cmd.Flags().Int64Var(&offset, "offset", 0, "page offset")
	cmd.AddCommand(&cobra.Command{
		Use:   "search NAME",
		Short: "Find hotels whose name contains NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			resp, err := client.NewHotelClient(opts.apiURL).SearchByName(ctx, args[0])
			if err != nil {
				return err
			}
			return printResponse(cmd.OutOrStdout(), resp)
		},
	})
	return cmd
}
