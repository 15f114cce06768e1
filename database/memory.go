package database

import (
	"context"
	"slices"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/model"
)

// MemoryStore keeps todos in process memory. All state is guarded by mu.
type MemoryStore struct {
	mu     sync.Mutex
	todos  map[int64]model.Todo
	order  []int64 // insertion order of ids currently stored
	lastID int64   // highest id ever issued or saved
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		todos: make(map[int64]model.Todo),
	}
}

func (s *MemoryStore) Init() error {
	log.Info("Using in-memory todo store, data is lost on restart")
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) HealthCheck() error {
	return nil
}

func (s *MemoryStore) GetAll(_ context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos := make([]model.Todo, 0, len(s.order))
	for _, id := range s.order {
		todos = append(todos, s.todos[id])
	}
	return todos, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int64) (model.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[id]
	return todo, ok, nil
}

func (s *MemoryStore) Save(_ context.Context, todo model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if todo.ID <= 0 {
		s.lastID++
		todo.ID = s.lastID
	} else if todo.ID > s.lastID {
		s.lastID = todo.ID
	}

	if _, exists := s.todos[todo.ID]; !exists {
		s.order = append(s.order, todo.ID)
	}
	s.todos[todo.ID] = todo

	return todo, nil
}

func (s *MemoryStore) Update(_ context.Context, todo model.Todo) (model.Todo, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[todo.ID]; !exists {
		return model.Todo{}, false, nil
	}
	s.todos[todo.ID] = todo
	return todo, true, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.todos[id]; !exists {
		return nil
	}

	delete(s.todos, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}
