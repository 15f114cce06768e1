package cmd

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/app"
	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the todo tables of the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog, err := opts.load()
			if err != nil {
				return err
			}
			defer closeLog()

			// OpenStore runs the store's migrations
			store, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.HealthCheck(); err != nil {
				return fmt.Errorf("store health check failed: %w", err)
			}

			log.Infow("✅ Migrations completed successfully", "store", cfg.STORE_DRIVER)
			return nil
		},
	}
}
