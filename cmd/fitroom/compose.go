package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

type composeOptions struct {
	subject   string
	reference string
	out       string
}

func newComposeCommand(opts *rootOptions) *cobra.Command {
	co := &composeOptions{}

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Dress the person in --subject with the garment in --reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subject, err := os.ReadFile(filepath.Clean(co.subject))
			if err != nil {
				return errors.Wrap(err, "read subject image")
			}
			reference, err := os.ReadFile(filepath.Clean(co.reference))
			if err != nil {
				return errors.Wrap(err, "read reference image")
			}

			client, err := newSDKClient(opts.env)
			if err != nil {
				return err
			}

			res, err := client.TryOnBytes(cmd.Context(), subject, reference)
			if err != nil {
				return err
			}

			png, err := res.PNG()
			if err != nil {
				return err
			}
			if err := os.WriteFile(co.out, png, 0o600); err != nil {
				return errors.Wrap(err, "write result")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", co.out, len(png))
			return nil
		},
	}

	cmd.Flags().StringVar(&co.subject, "subject", "", "photo of the person")
	cmd.Flags().StringVar(&co.reference, "reference", "", "garment image")
	cmd.Flags().StringVar(&co.out, "out", "tryon.png", "output file")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("reference")
	return cmd
}
