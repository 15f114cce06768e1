package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for STORE_DRIVER
const (
	StoreMemory   = "memory"
	StoreGORM     = "gorm"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreRedis    = "redis"
)

var ErrUnsupportedDriver = errors.New("unsupported store driver")

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set.
// A missing .env file is not an error.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Store selection
	STORE_DRIVER string
	// Postgres (gorm / postgres drivers)
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	// SQLite
	SQLITE_PATH string
	// Redis
	REDIS_URL string
	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
	// Per-request access log
	REQUEST_LOG bool
	// Respond 200 instead of 404 when deleting an id that does not exist
	TODO_DELETE_MISSING_OK bool
	// Cron
	CRON_ENABLED        bool
	STATS_CRON_SCHEDULE string
	// Logging
	LOG_LEVEL string
	LOG_FILE  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("GO_ENV", "development")
	v.SetDefault("PORT", 8080)
	v.SetDefault("STORE_DRIVER", StoreMemory)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER_NAME", "postgres")
	v.SetDefault("DB_NAME", "todos")
	v.SetDefault("DB_SSL_MODE", "disable")

	v.SetDefault("SQLITE_PATH", "todos.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("REQUEST_LOG", true)

	v.SetDefault("TODO_DELETE_MISSING_OK", false)

	v.SetDefault("CRON_ENABLED", true)
	v.SetDefault("STATS_CRON_SCHEDULE", "0 */5 * * * *")

	v.SetDefault("LOG_LEVEL", "info")
}

func Get() (*EnvironmentVariable, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	port := v.GetInt("PORT")
	if port <= 0 {
		port = 8080
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	if err := ValidateStoreDriver(driver); err != nil {
		return nil, err
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       v.GetString("GO_ENV"),
		PORT:         port,
		STORE_DRIVER: driver,
		// Postgres
		DB_USER_NAME: v.GetString("DB_USER_NAME"),
		DB_PASSWORD:  v.GetString("DB_PASSWORD"),
		DB_NAME:      v.GetString("DB_NAME"),
		DB_HOST:      v.GetString("DB_HOST"),
		DB_PORT:      v.GetString("DB_PORT"),
		DB_SSL_MODE:  v.GetString("DB_SSL_MODE"),
		// SQLite
		SQLITE_PATH: v.GetString("SQLITE_PATH"),
		// Redis
		REDIS_URL: v.GetString("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     v.GetString("ALLOWED_ORIGINS"),
		RATE_LIMIT_REQUESTS: v.GetInt("RATE_LIMIT_REQUESTS"),
		RATE_LIMIT_WINDOW:   v.GetDuration("RATE_LIMIT_WINDOW"),
		REQUEST_LOG:         v.GetBool("REQUEST_LOG"),
		// Todos
		TODO_DELETE_MISSING_OK: v.GetBool("TODO_DELETE_MISSING_OK"),
		// Cron
		CRON_ENABLED:        v.GetBool("CRON_ENABLED"),
		STATS_CRON_SCHEDULE: v.GetString("STATS_CRON_SCHEDULE"),
		// Logging
		LOG_LEVEL: v.GetString("LOG_LEVEL"),
		LOG_FILE:  v.GetString("LOG_FILE"),
	}

	return envVariables, nil
}

// ValidateStoreDriver reports whether driver names a supported store backend
func ValidateStoreDriver(driver string) error {
	switch driver {
	case StoreMemory, StoreGORM, StorePostgres, StoreSQLite, StoreRedis:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
}

// IsProduction reports whether GO_ENV is production
func (e *EnvironmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

// PostgresDSN builds the key/value connection string shared by the gorm and postgres stores
func (e *EnvironmentVariable) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		e.DB_HOST,
		e.DB_USER_NAME,
		e.DB_PASSWORD,
		e.DB_NAME,
		e.DB_PORT,
		e.DB_SSL_MODE,
	)
}
