package database

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/model"
	"github.com/sahilchouksey/todos-api/utils/cache"
)

const defaultRedisPrefix = "todos"

// RedisStore keeps each todo as JSON in one hash, keyed by id. Ids come
// from an INCR counter that is only ever raised.
type RedisStore struct {
	cache  *cache.RedisCache
	prefix string
}

// StartRedis connects to redisURL
func StartRedis(redisURL string) (*RedisStore, error) {
	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	log.Info("Successfully connected to Redis.")
	return NewRedisStore(redisCache, defaultRedisPrefix), nil
}

// NewRedisStore stores todos under keys starting with prefix
func NewRedisStore(redisCache *cache.RedisCache, prefix string) *RedisStore {
	return &RedisStore{
		cache:  redisCache,
		prefix: prefix,
	}
}

func (s *RedisStore) itemsKey() string {
	return s.prefix + ":items"
}

func (s *RedisStore) seqKey() string {
	return s.prefix + ":seq"
}

func (s *RedisStore) Init() error {
	log.Infow("Using Redis todo store", "items", s.itemsKey(), "sequence", s.seqKey())
	return nil
}

func (s *RedisStore) Close() error {
	log.Info("Closing Redis connection...")
	return s.cache.Close()
}

func (s *RedisStore) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.cache.Ping(ctx)
}

func (s *RedisStore) GetAll(ctx context.Context) ([]model.Todo, error) {
	fields, err := s.cache.HGetAll(ctx, s.itemsKey())
	if err != nil {
		return nil, fmt.Errorf("load todos: %w", err)
	}

	todos := make([]model.Todo, 0, len(fields))
	for field, raw := range fields {
		var todo model.Todo
		if err := json.Unmarshal([]byte(raw), &todo); err != nil {
			return nil, fmt.Errorf("decode todo %s: %w", field, err)
		}
		todos = append(todos, todo)
	}

	slices.SortFunc(todos, func(a, b model.Todo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return todos, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id int64) (model.Todo, bool, error) {
	var todo model.Todo
	err := s.cache.HGetJSON(ctx, s.itemsKey(), strconv.FormatInt(id, 10), &todo)
	if errors.Is(err, cache.ErrNotFound) {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("load todo %d: %w", id, err)
	}
	return todo, true, nil
}

func (s *RedisStore) Save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if todo.ID <= 0 {
		id, err := s.cache.Increment(ctx, s.seqKey())
		if err != nil {
			return model.Todo{}, fmt.Errorf("allocate todo id: %w", err)
		}
		todo.ID = id
	} else if _, err := s.cache.RaiseCounter(ctx, s.seqKey(), todo.ID); err != nil {
		return model.Todo{}, fmt.Errorf("advance todo id sequence: %w", err)
	}

	if err := s.cache.HSetJSON(ctx, s.itemsKey(), strconv.FormatInt(todo.ID, 10), todo); err != nil {
		return model.Todo{}, fmt.Errorf("store todo %d: %w", todo.ID, err)
	}
	return todo, nil
}

func (s *RedisStore) Update(ctx context.Context, todo model.Todo) (model.Todo, bool, error) {
	replaced, err := s.cache.HReplaceJSON(ctx, s.itemsKey(), strconv.FormatInt(todo.ID, 10), todo)
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("update todo %d: %w", todo.ID, err)
	}
	if !replaced {
		return model.Todo{}, false, nil
	}
	return todo, true, nil
}

func (s *RedisStore) DeleteByID(ctx context.Context, id int64) error {
	if err := s.cache.HDel(ctx, s.itemsKey(), strconv.FormatInt(id, 10)); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

// Drop removes every key owned by the store, counter included
func (s *RedisStore) Drop(ctx context.Context) error {
	return s.cache.Delete(ctx, s.itemsKey(), s.seqKey())
}
