package main

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newSearchCommand(opts *rootOptions) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products and print the normalized result as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSDKClient(opts.env)
			if err != nil {
				return err
			}

			res, err := client.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(res); err != nil {
				return errors.Wrap(err, "encode result")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print single-line JSON")
	return cmd
}
