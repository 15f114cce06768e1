package database

import (
	"context"
	"sync"
	"testing"

	"github.com/sahilchouksey/todos-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises the behaviour every Storage backend shares.
// newStore must return an initialized, empty store.
func runRepositoryContract(t *testing.T, newStore func(t *testing.T) Storage) {
	ctx := context.Background()

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := newStore(t)

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("find missing id is absent, not an error", func(t *testing.T) {
		store := newStore(t)

		_, ok, err := store.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("save assigns ids and reads back", func(t *testing.T) {
		store := newStore(t)

		first, err := store.Save(ctx, model.Todo{Title: "title", Completed: true, Order: 1})
		require.NoError(t, err)
		second, err := store.Save(ctx, model.Todo{Title: "title2", Order: 2})
		require.NoError(t, err)

		assert.Positive(t, first.ID)
		assert.NotEqual(t, first.ID, second.ID)

		got, ok, err := store.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, got)

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Todo{first, second}, todos)
	})

	t.Run("save with existing id replaces the record", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, model.Todo{Title: "old", Completed: true, Order: 1})
		require.NoError(t, err)

		replaced := model.Todo{ID: saved.ID, Title: "new", Completed: false, Order: 7}
		got, err := store.Save(ctx, replaced)
		require.NoError(t, err)
		assert.Equal(t, replaced, got)

		found, ok, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, replaced, found)

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, 1)
	})

	t.Run("empty title round trips", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, model.Todo{Title: ""})
		require.NoError(t, err)

		got, ok, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "", got.Title)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, model.Todo{Title: "title"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteByID(ctx, saved.ID))

		_, ok, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("delete missing id is a no-op", func(t *testing.T) {
		store := newStore(t)

		kept, err := store.Save(ctx, model.Todo{Title: "keep"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteByID(ctx, kept.ID+100))

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Todo{kept}, todos)
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		store := newStore(t)

		a, err := store.Save(ctx, model.Todo{Title: "a"})
		require.NoError(t, err)
		b, err := store.Save(ctx, model.Todo{Title: "b"})
		require.NoError(t, err)

		require.NoError(t, store.DeleteByID(ctx, b.ID))
		require.NoError(t, store.DeleteByID(ctx, a.ID))

		c, err := store.Save(ctx, model.Todo{Title: "c"})
		require.NoError(t, err)
		assert.Greater(t, c.ID, b.ID)
	})

	t.Run("explicit id moves the counter past it", func(t *testing.T) {
		store := newStore(t)

		explicit, err := store.Save(ctx, model.Todo{ID: 40, Title: "explicit"})
		require.NoError(t, err)
		assert.Equal(t, int64(40), explicit.ID)

		next, err := store.Save(ctx, model.Todo{Title: "next"})
		require.NoError(t, err)
		assert.Greater(t, next.ID, int64(40))
	})

	t.Run("concurrent creates get distinct ids", func(t *testing.T) {
		store := newStore(t)

		const workers = 8
		const perWorker = 25

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[int64]int)
		)
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perWorker; i++ {
					saved, err := store.Save(ctx, model.Todo{Title: "concurrent"})
					if !assert.NoError(t, err) {
						return
					}
					mu.Lock()
					ids[saved.ID]++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Len(t, ids, workers*perWorker)
		for id, n := range ids {
			assert.Equal(t, 1, n, "id %d issued more than once", id)
		}

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, workers*perWorker)
	})
	t.Run("replacing a record does not advance the counter", func(t *testing.T) {
		store := newStore(t)

		first, err := store.Save(ctx, model.Todo{Title: "first"})
		require.NoError(t, err)
		for i := range 3 {
			_, err := store.Save(ctx, model.Todo{ID: first.ID, Title: "edit", Order: i})
			require.NoError(t, err)
		}

		second, err := store.Save(ctx, model.Todo{Title: "second"})
		require.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)
	})

	t.Run("lower explicit id never moves the counter back", func(t *testing.T) {
		store := newStore(t)

		_, err := store.Save(ctx, model.Todo{ID: 50, Title: "high"})
		require.NoError(t, err)
		_, err = store.Save(ctx, model.Todo{ID: 20, Title: "low"})
		require.NoError(t, err)

		next, err := store.Save(ctx, model.Todo{Title: "next"})
		require.NoError(t, err)
		assert.Greater(t, next.ID, int64(50))
	})

	t.Run("replacing records while creating keeps ids distinct", func(t *testing.T) {
		store := newStore(t)

		const existing = 5
		const creates = 60

		var stored []model.Todo
		for range existing {
			saved, err := store.Save(ctx, model.Todo{Title: "existing"})
			require.NoError(t, err)
			stored = append(stored, saved)
		}

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			ids = make(map[int64]bool)
		)
		for _, todo := range stored {
			ids[todo.ID] = true
		}

		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := range creates {
				todo := stored[i%existing]
				todo.Title = "edited"
				todo.Completed = i%2 == 0
				_, err := store.Save(ctx, todo)
				assert.NoError(t, err)
			}
		}()
		go func() {
			defer wg.Done()
			for range creates {
				saved, err := store.Save(ctx, model.Todo{Title: "created"})
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				assert.False(t, ids[saved.ID], "id %d issued twice", saved.ID)
				ids[saved.ID] = true
				mu.Unlock()
			}
		}()
		wg.Wait()

		todos, err := store.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, todos, existing+creates)
	})

	t.Run("update replaces only stored records", func(t *testing.T) {
		store := newStore(t)

		saved, err := store.Save(ctx, model.Todo{Title: "old", Completed: true, Order: 1})
		require.NoError(t, err)

		changed := model.Todo{ID: saved.ID, Title: "new", Completed: false, Order: 1}
		got, ok, err := store.Update(ctx, changed)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, changed, got)

		found, _, err := store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, changed, found)

		require.NoError(t, store.DeleteByID(ctx, saved.ID))
		_, ok, err = store.Update(ctx, changed)
		require.NoError(t, err)
		assert.False(t, ok)

		_, ok, err = store.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, ok, "update must not recreate a deleted todo")
	})
}
