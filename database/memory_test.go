package database

import (
	"context"
	"testing"

	"github.com/sahilchouksey/todos-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	runRepositoryContract(t, func(t *testing.T) Storage {
		store := NewMemoryStore()
		require.NoError(t, store.Init())
		return store
	})
}

func TestMemoryStoreKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ten, err := store.Save(ctx, model.Todo{ID: 10, Title: "ten"})
	require.NoError(t, err)
	eleven, err := store.Save(ctx, model.Todo{Title: "eleven"})
	require.NoError(t, err)
	five, err := store.Save(ctx, model.Todo{ID: 5, Title: "five"})
	require.NoError(t, err)

	assert.Equal(t, int64(11), eleven.ID)

	// overwriting keeps the original position
	ten.Title = "ten again"
	_, err = store.Save(ctx, ten)
	require.NoError(t, err)

	todos, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{ten, eleven, five}, todos)

	require.NoError(t, store.DeleteByID(ctx, eleven.ID))
	todos, err = store.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Todo{ten, five}, todos)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	saved, err := store.Save(ctx, model.Todo{Title: "title"})
	require.NoError(t, err)

	todos, err := store.GetAll(ctx)
	require.NoError(t, err)
	todos[0].Title = "mutated"

	got, ok, err := store.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "title", got.Title)
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore()
	assert.NoError(t, store.Init())
	assert.NoError(t, store.HealthCheck())
	assert.NoError(t, store.Close())
}
