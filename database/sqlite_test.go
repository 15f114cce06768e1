package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sahilchouksey/todos-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T, path string) *SQLStore {
	t.Helper()

	store, err := StartSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.Init())
	return store
}

func TestSQLiteStore(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Storage {
		return newSQLiteStore(t, filepath.Join(t.TempDir(), "todos.db"))
	})
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	store, err := StartSQLite(path)
	require.NoError(t, err)
	require.NoError(t, store.Init())

	saved, err := store.Save(ctx, model.Todo{Title: "persisted", Completed: true, Order: 3})
	require.NoError(t, err)
	require.NoError(t, store.DeleteByID(ctx, saved.ID))
	kept, err := store.Save(ctx, model.Todo{Title: "kept"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened := newSQLiteStore(t, path)
	assert.NoError(t, reopened.HealthCheck())

	todos, err := reopened.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{kept}, todos)

	next, err := reopened.Save(ctx, model.Todo{Title: "after reopen"})
	require.NoError(t, err)
	assert.Greater(t, next.ID, kept.ID)
}

func TestSQLiteStoreInitIsIdempotent(t *testing.T) {
	store := newSQLiteStore(t, filepath.Join(t.TempDir(), "todos.db"))
	assert.NoError(t, store.Init())
}

func TestDialectRebind(t *testing.T) {
	assert.Equal(t, "SELECT * FROM todos WHERE id = $1 AND title = $2",
		postgresDialect.rebind("SELECT * FROM todos WHERE id = ? AND title = ?"))
	assert.Equal(t, "DELETE FROM todos WHERE id = ?",
		sqliteDialect.rebind("DELETE FROM todos WHERE id = ?"))
}
