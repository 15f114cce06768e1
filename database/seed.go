package database

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/model"
)

// Seeder handles database seeding operations
type Seeder struct {
	repo TodoRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(repo TodoRepository) *Seeder {
	return &Seeder{repo: repo}
}

// SampleTodos are inserted by SeedTodos into an empty store
var SampleTodos = []model.Todo{
	{Title: "Read the API docs", Completed: true, Order: 1},
	{Title: "Create your first todo", Completed: false, Order: 2},
	{Title: "Mark a todo as completed", Completed: false, Order: 3},
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(ctx context.Context) error {
	log.Info("🌱 Starting database seeding...")

	if err := s.SeedTodos(ctx); err != nil {
		return fmt.Errorf("failed to seed todos: %w", err)
	}

	log.Info("✅ Database seeding completed successfully!")
	return nil
}

// SeedTodos inserts SampleTodos unless the store already holds todos
func (s *Seeder) SeedTodos(ctx context.Context) error {
	existing, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	if len(existing) > 0 {
		log.Infow("⏭️  Todos already exist, skipping...", "count", len(existing))
		return nil
	}

	for _, todo := range SampleTodos {
		saved, err := s.repo.Save(ctx, todo)
		if err != nil {
			return err
		}
		log.Debugw("Seeded todo", "id", saved.ID, "title", saved.Title)
	}

	log.Infow("Seeded todos", "count", len(SampleTodos))
	return nil
}
