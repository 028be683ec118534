package main

import (
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/fitroom/internal/config"
)

type rootOptions struct {
	env string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "fitroom",
		Short:         "Product search and virtual try-on API",
		Long:          "fitroom proxies Amazon product search and dresses a person photo in a chosen garment using a generative image model.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(), "config environment (config/<env>.yaml)")

	cmd.AddCommand(
		newServeCommand(opts),
		newSearchCommand(opts),
		newComposeCommand(opts),
		newVersionCommand(),
	)
	return cmd
}
