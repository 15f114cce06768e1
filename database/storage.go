package database

import (
	"context"

	"github.com/sahilchouksey/todos-api/model"
)

// TodoRepository is the persistence contract behind the todo handlers.
// FindByID reports absence through ok=false, never through err.
type TodoRepository interface {
	GetAll(ctx context.Context) ([]model.Todo, error)
	FindByID(ctx context.Context, id int64) (todo model.Todo, ok bool, err error)
	// Save inserts or fully replaces todo.ID. An ID <= 0 asks the store to
	// assign the next unused id; ids are never reused after a delete.
	Save(ctx context.Context, todo model.Todo) (model.Todo, error)
	DeleteByID(ctx context.Context, id int64) error
}

// TodoUpdater replaces a todo only while it is still stored, so an update
// racing a delete cannot bring the record back. ok=false when absent.
type TodoUpdater interface {
	Update(ctx context.Context, todo model.Todo) (updated model.Todo, ok bool, err error)
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	TodoRepository
	TodoUpdater

	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error
}
