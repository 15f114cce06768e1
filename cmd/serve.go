package cmd

import (
	"context"

	"github.com/sahilchouksey/todos-api/app"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the todo API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *options) error {
	cfg, closeLog, err := opts.load()
	if err != nil {
		return err
	}
	defer closeLog()

	return app.SetupAndRunServer(ctx, cfg)
}
