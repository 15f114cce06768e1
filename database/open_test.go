package database

import (
	"path/filepath"
	"testing"

	"github.com/sahilchouksey/todos-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		store, err := Open(&config.EnvironmentVariable{STORE_DRIVER: config.StoreMemory})
		require.NoError(t, err)
		assert.IsType(t, &MemoryStore{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		store, err := Open(&config.EnvironmentVariable{
			STORE_DRIVER: config.StoreSQLite,
			SQLITE_PATH:  filepath.Join(t.TempDir(), "todos.db"),
		})
		require.NoError(t, err)
		t.Cleanup(func() { store.Close() })
		assert.IsType(t, &SQLStore{}, store)
		assert.NoError(t, store.Init())
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := Open(&config.EnvironmentVariable{STORE_DRIVER: "mongo"})
		assert.ErrorIs(t, err, config.ErrUnsupportedDriver)
	})
}
