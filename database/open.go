package database

import (
	"fmt"

	"github.com/sahilchouksey/todos-api/config"
)

// Open connects the store selected by STORE_DRIVER. Callers still run Init.
func Open(cfg *config.EnvironmentVariable) (Storage, error) {
	switch cfg.STORE_DRIVER {
	case config.StoreMemory, "":
		return NewMemoryStore(), nil
	case config.StoreGORM:
		return StartGORM(cfg)
	case config.StorePostgres:
		return StartPostgres(cfg)
	case config.StoreSQLite:
		return StartSQLite(cfg.SQLITE_PATH)
	case config.StoreRedis:
		return StartRedis(cfg.REDIS_URL)
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.STORE_DRIVER)
}
