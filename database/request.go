package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahilchouksey/todos-api/model"
)

const (
	selectTodosQuery = `SELECT id, title, completed, "order" FROM todos ORDER BY id;`
	selectTodoQuery  = `SELECT id, title, completed, "order" FROM todos WHERE id = ?;`
	insertTodoQuery  = `INSERT INTO todos (title, completed, "order") VALUES (?, ?, ?) RETURNING id;`
	upsertTodoQuery  = `
		INSERT INTO todos (id, title, completed, "order") VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			completed = excluded.completed,
			"order" = excluded."order"`
	// xmax is 0 only for a freshly inserted row
	upsertReturningInsertedQuery = upsertTodoQuery + ` RETURNING (xmax = 0);`
	updateTodoQuery              = `UPDATE todos SET title = ?, completed = ?, "order" = ? WHERE id = ?;`
	deleteTodoQuery              = `DELETE FROM todos WHERE id = ?;`
)

func (s *SQLStore) GetAll(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.rebind(selectTodosQuery))
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanIntoTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (model.Todo, bool, error) {
	row := s.db.QueryRowContext(ctx, s.dialect.rebind(selectTodoQuery), id)

	todo, err := scanIntoTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, false, nil
	}
	if err != nil {
		return model.Todo{}, false, err
	}
	return *todo, true, nil
}

func (s *SQLStore) Save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	if todo.ID <= 0 {
		err := s.db.QueryRowContext(ctx, s.dialect.rebind(insertTodoQuery),
			todo.Title, todo.Completed, todo.Order).Scan(&todo.ID)
		if err != nil {
			return model.Todo{}, fmt.Errorf("insert todo: %w", err)
		}
		return todo, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Todo{}, fmt.Errorf("begin save todo %d: %w", todo.ID, err)
	}
	defer tx.Rollback()

	if s.dialect.bumpSequence == "" {
		if _, err := tx.ExecContext(ctx, s.dialect.rebind(upsertTodoQuery+";"),
			todo.ID, todo.Title, todo.Completed, todo.Order); err != nil {
			return model.Todo{}, fmt.Errorf("save todo %d: %w", todo.ID, err)
		}
	} else {
		var inserted bool
		err := tx.QueryRowContext(ctx, s.dialect.rebind(upsertReturningInsertedQuery),
			todo.ID, todo.Title, todo.Completed, todo.Order).Scan(&inserted)
		if err != nil {
			return model.Todo{}, fmt.Errorf("save todo %d: %w", todo.ID, err)
		}

		// replacing an existing row leaves the generator alone
		if inserted {
			if err := s.raiseSequence(ctx, tx, todo.ID); err != nil {
				return model.Todo{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Todo{}, fmt.Errorf("commit todo %d: %w", todo.ID, err)
	}
	return todo, nil
}

func (s *SQLStore) raiseSequence(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, s.dialect.lockSequence); err != nil {
		return fmt.Errorf("lock todo id sequence: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.dialect.rebind(s.dialect.bumpSequence), id, id); err != nil {
		return fmt.Errorf("advance todo id sequence: %w", err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, todo model.Todo) (model.Todo, bool, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.rebind(updateTodoQuery),
		todo.Title, todo.Completed, todo.Order, todo.ID)
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("update todo %d: %w", todo.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return model.Todo{}, false, fmt.Errorf("update todo %d: %w", todo.ID, err)
	}
	if n == 0 {
		return model.Todo{}, false, nil
	}
	return todo, true, nil
}

func (s *SQLStore) DeleteByID(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(deleteTodoQuery), id); err != nil {
		return fmt.Errorf("delete todo %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntoTodo(row rowScanner) (*model.Todo, error) {
	todo := new(model.Todo)
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Completed,
		&todo.Order,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}
