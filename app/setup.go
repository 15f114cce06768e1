package app

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/api"
	"github.com/sahilchouksey/todos-api/config"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/sahilchouksey/todos-api/router"
	"github.com/sahilchouksey/todos-api/services/cron"
)

// OpenStore connects and initializes the configured store
func OpenStore(cfg *config.EnvironmentVariable) (database.Storage, error) {
	store, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.STORE_DRIVER, err)
	}

	if err := store.Init(); err != nil {
		store.Close()
		return nil, fmt.Errorf("initialize %s store: %w", cfg.STORE_DRIVER, err)
	}

	return store, nil
}

// SetupAndRunServer serves the API until ctx is cancelled
func SetupAndRunServer(ctx context.Context, cfg *config.EnvironmentVariable) error {
	store, err := OpenStore(cfg)
	if err != nil {
		return err
	}

	// Initialize Cron Manager (only if enabled)
	var cronManager *cron.CronManager
	if cfg.CRON_ENABLED {
		cronManager = cron.NewCronManager(store, cfg.STATS_CRON_SCHEDULE)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warnw("Failed to start cron jobs", "error", err)
			cronManager = nil
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if err := store.Close(); err != nil {
			log.Warnw("Failed to close store", "error", err)
		}
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", cfg.PORT))
	router.SetupRoutes(server.GetEngine(), store, cfg)

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-ctx.Done():
			if err := server.Shutdown(); err != nil {
				log.Warnw("Server shutdown failed", "error", err)
			}
		case <-stopped:
		}
	}()

	return server.Run()
}
