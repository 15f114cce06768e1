package cmd

import (
	"github.com/sahilchouksey/todos-api/app"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample todos into an empty store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := opts.load()
			if err != nil {
				return err
			}
			defer closeLog()

			store, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			return database.NewSeeder(store).SeedAll(cmd.Context())
		},
	}
}
