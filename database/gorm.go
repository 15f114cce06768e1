package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/config"
	"github.com/sahilchouksey/todos-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(cfg *config.EnvironmentVariable) (*GORMStore, error) {
	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	})
	if err != nil {
		log.Errorw("Unable to connect to PostgreSQL with GORM", "error", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("Successfully connected to PostgreSQL Database with GORM.")

	return NewGORMStore(db), nil
}

// NewGORMStore wraps an already opened *gorm.DB
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Info("Running GORM AutoMigrate for todos...")

	if err := s.db.AutoMigrate(&model.Todo{}); err != nil {
		log.Errorw("Error running AutoMigrate", "error", err)
		return err
	}

	log.Info("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Info("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// GetAll retrieves all todos ordered by id
func (s *GORMStore) GetAll(ctx context.Context) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := s.db.WithContext(ctx).Order("id").Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	return todos, nil
}

// FindByID retrieves one todo; a missing row is reported through ok
func (s *GORMStore) FindByID(ctx context.Context, id int64) (model.Todo, bool, error) {
	var todo model.Todo
	err := s.db.WithContext(ctx).First(&todo, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("find todo %d: %w", id, err)
	}
	return todo, true, nil
}

// Save creates todos without an id and upserts the rest
func (s *GORMStore) Save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	db := s.db.WithContext(ctx)

	if todo.ID <= 0 {
		todo.ID = 0
		if err := db.Create(&todo).Error; err != nil {
			return model.Todo{}, fmt.Errorf("create todo: %w", err)
		}
		return todo, nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&todo)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return tx.Model(&model.Todo{ID: todo.ID}).
				Select("title", "completed", "order").
				Updates(model.Todo{Title: todo.Title, Completed: todo.Completed, Order: todo.Order}).Error
		}

		// explicit ids do not advance the serial sequence
		if err := tx.Exec(postgresDialect.lockSequence).Error; err != nil {
			return err
		}
		return tx.Exec(postgresDialect.bumpSequence, todo.ID, todo.ID).Error
	})
	if err != nil {
		return model.Todo{}, fmt.Errorf("save todo %d: %w", todo.ID, err)
	}
	return todo, nil
}

// Update replaces a todo only if its row still exists
func (s *GORMStore) Update(ctx context.Context, todo model.Todo) (model.Todo, bool, error) {
	res := s.db.WithContext(ctx).
		Model(&model.Todo{ID: todo.ID}).
		Select("title", "completed", "order").
		Updates(model.Todo{Title: todo.Title, Completed: todo.Completed, Order: todo.Order})
	if res.Error != nil {
		return model.Todo{}, false, fmt.Errorf("update todo %d: %w", todo.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return model.Todo{}, false, nil
	}
	return todo, true, nil
}

// DeleteByID deletes a todo by ID; deleting a missing id is not an error
func (s *GORMStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&model.Todo{}, id).Error; err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}
