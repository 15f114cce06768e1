package database

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	_ "modernc.org/sqlite"
)

// StartSQLite opens (creating if needed) the SQLite database at path.
// SQLite allows a single writer, so the pool is capped at one connection;
// this also keeps ":memory:" databases on one connection.
func StartSQLite(path string) (*SQLStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure sqlite: %w", err)
	}

	log.Infow("Opened SQLite database", "path", path)
	return &SQLStore{
		db:      db,
		dialect: sqliteDialect,
	}, nil
}
