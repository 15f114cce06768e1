package database

import (
	"fmt"
	"strconv"
	"strings"
)

type dialect struct {
	name   string
	tables []string
	// lockSequence serializes explicit-id inserts; bumpSequence then raises
	// the id generator to an explicitly inserted id, never lowering it.
	// Both are empty when the engine does it on its own.
	lockSequence string
	bumpSequence string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

var postgresDialect = dialect{
	name: "postgres",
	tables: []string{`
	CREATE TABLE IF NOT EXISTS todos (
		id BIGINT PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY,
		title TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		"order" INTEGER NOT NULL DEFAULT 0
	);
	`},
	lockSequence: `SELECT pg_advisory_xact_lock(hashtext('todos_id_seq'))`,
	// takes the id twice: the new value and the comparison
	bumpSequence: `
	SELECT setval(pg_get_serial_sequence('todos', 'id'), ?)
	WHERE ? > COALESCE(pg_sequence_last_value(pg_get_serial_sequence('todos', 'id')::regclass), 0)`,
	numbered:     true,
}

// AUTOINCREMENT keeps sqlite_sequence at the highest id ever used, so
// deleted ids are never handed out again.
var sqliteDialect = dialect{
	name: "sqlite",
	tables: []string{`
	CREATE TABLE IF NOT EXISTS todos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		"order" INTEGER NOT NULL DEFAULT 0
	);
	`},
}

// rebind rewrites ? placeholders for dialects that number them
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Initialize() error {
	if err := s.InitTables(); err != nil {
		return fmt.Errorf("init %s tables: %w", s.dialect.name, err)
	}
	return nil
}

func (s *SQLStore) InitTables() error {
	for _, table := range s.dialect.tables {
		if _, err := s.db.Exec(table); err != nil {
			return err
		}
	}
	return nil
}
