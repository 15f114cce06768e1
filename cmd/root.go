// Package cmd implements the todos command line: serving the API and
// maintaining the configured store.
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilchouksey/todos-api/config"
	"github.com/sahilchouksey/todos-api/utils"
	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time.
var Version = "dev"

// options holds flag values shared by all subcommands
type options struct {
	port  int
	store string
}

// Run executes the todos CLI with args (without the program name)
func Run(ctx context.Context, args []string) error {
	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "todos",
		Short:         "Todo list HTTP API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Serving is the default action
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().IntVar(&opts.port, "port", 0, "port to listen on (overrides PORT)")
	root.PersistentFlags().StringVar(&opts.store, "store", "",
		fmt.Sprintf("store driver: %s, %s, %s, %s or %s (overrides STORE_DRIVER)",
			config.StoreMemory, config.StoreGORM, config.StorePostgres, config.StoreSQLite, config.StoreRedis))

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newSeedCmd(opts))
	root.AddCommand(newVersionCmd())

	return root
}

// load reads .env and the environment, applies flag overrides and sets up
// logging. The returned func closes the log file, if any.
func (o *options) load() (*config.EnvironmentVariable, func() error, error) {
	if err := config.LoadENV(); err != nil {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	if o.port > 0 {
		cfg.PORT = o.port
	}
	if store := strings.ToLower(strings.TrimSpace(o.store)); store != "" {
		if err := config.ValidateStoreDriver(store); err != nil {
			return nil, nil, err
		}
		cfg.STORE_DRIVER = store
	}

	closeLog, err := utils.SetupLogger(cfg.LOG_LEVEL, cfg.LOG_FILE)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return cfg, closeLog, nil
}
