package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	_ "github.com/lib/pq"
	"github.com/sahilchouksey/todos-api/config"
)

// SQLStore is a database/sql backed todo store. The same queries serve
// Postgres (lib/pq) and SQLite (modernc), differing only by dialect.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// StartPostgres opens a lib/pq connection pool
func StartPostgres(cfg *config.EnvironmentVariable) (*SQLStore, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN())
	if err != nil {
		log.Errorw("Unable to open PostgreSQL database", "error", err)
		return nil, err
	}

	db.SetMaxIdleConns(10)
	db.SetMaxOpenConns(100)
	db.SetConnMaxLifetime(time.Hour)

	log.Infow("Connected to PostgreSQL database", "host", cfg.DB_HOST, "name", cfg.DB_NAME)
	return &SQLStore{
		db:      db,
		dialect: postgresDialect,
	}, nil
}

func (s *SQLStore) Init() error {
	log.Infow("Initializing database", "dialect", s.dialect.name)
	return s.Initialize()
}

func (s *SQLStore) Close() error {
	log.Infow("Closing database", "dialect", s.dialect.name)
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *SQLStore) HealthCheck() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("%s ping: %w", s.dialect.name, err)
	}
	return nil
}
