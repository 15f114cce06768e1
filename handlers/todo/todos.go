package todo

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/sahilchouksey/todos-api/model"
	"github.com/sahilchouksey/todos-api/utils/response"
	"github.com/sahilchouksey/todos-api/utils/validation"
)

// Config tunes handler behaviour
type Config struct {
	// DeleteMissingOK answers DELETE on an unknown id with 200 instead of 404
	DeleteMissingOK bool
}

// TodoHandler handles todo-related requests
type TodoHandler struct {
	repo      database.TodoRepository
	validator *validation.Validator
	config    Config
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(repo database.TodoRepository, config Config) *TodoHandler {
	return &TodoHandler{
		repo:      repo,
		validator: validation.NewValidator(),
		config:    config,
	}
}

// CreateTodoRequest represents the request body for creating a todo.
// An id in the body is ignored.
type CreateTodoRequest struct {
	Title     *string `json:"title" validate:"required"`
	Completed bool    `json:"completed"`
	Order     int     `json:"order"`
}

// UpdateTodoRequest represents the request body for updating a todo.
// Only title and completed are applied; id and order stay as stored.
type UpdateTodoRequest struct {
	Title     *string `json:"title" validate:"required"`
	Completed bool    `json:"completed"`
}

// todoID parses the :id path parameter. Anything that is not a positive
// integer cannot name a stored todo.
func todoID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListTodos handles GET /todos
func (h *TodoHandler) ListTodos(c *fiber.Ctx) error {
	todos, err := h.repo.GetAll(c.UserContext())
	if err != nil {
		log.Errorw("Failed to list todos", "error", err)
		return response.InternalServerError(c, "Failed to fetch todos")
	}

	if todos == nil {
		todos = []model.Todo{}
	}
	return response.JSON(c, fiber.StatusOK, todos)
}

// GetTodo handles GET /todos/:id
func (h *TodoHandler) GetTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return response.Empty(c, fiber.StatusNotFound)
	}

	todo, found, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		log.Errorw("Failed to fetch todo", "id", id, "error", err)
		return response.InternalServerError(c, "Failed to fetch todo")
	}
	if !found {
		return response.Empty(c, fiber.StatusNotFound)
	}

	return response.JSON(c, fiber.StatusOK, todo)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(c *fiber.Ctx) error {
	var req CreateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	todo, err := h.repo.Save(c.UserContext(), model.Todo{
		Title:     *req.Title,
		Completed: req.Completed,
		Order:     req.Order,
	})
	if err != nil {
		log.Errorw("Failed to create todo", "error", err)
		return response.InternalServerError(c, "Failed to create todo")
	}

	log.Debugw("Created todo", "id", todo.ID)
	return response.JSON(c, fiber.StatusCreated, todo)
}

// UpdateTodo handles PATCH /todos/:id
func (h *TodoHandler) UpdateTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return response.Empty(c, fiber.StatusNotFound)
	}

	var req UpdateTodoRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, validation.FormatValidationErrors(err))
	}

	todo, found, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		log.Errorw("Failed to fetch todo", "id", id, "error", err)
		return response.InternalServerError(c, "Failed to fetch todo")
	}
	if !found {
		return response.Empty(c, fiber.StatusNotFound)
	}

	todo.Title = *req.Title
	todo.Completed = req.Completed

	updated, found, err := h.replace(c.UserContext(), todo)
	if err != nil {
		log.Errorw("Failed to update todo", "id", id, "error", err)
		return response.InternalServerError(c, "Failed to update todo")
	}
	if !found {
		// deleted after it was read
		return response.Empty(c, fiber.StatusNotFound)
	}

	return response.JSON(c, fiber.StatusOK, updated)
}

// replace stores todo without recreating it if it was deleted in the
// meantime. Repositories without TodoUpdater fall back to Save.
func (h *TodoHandler) replace(ctx context.Context, todo model.Todo) (model.Todo, bool, error) {
	if updater, ok := h.repo.(database.TodoUpdater); ok {
		return updater.Update(ctx, todo)
	}

	saved, err := h.repo.Save(ctx, todo)
	return saved, err == nil, err
}

// DeleteTodo handles DELETE /todos/:id
func (h *TodoHandler) DeleteTodo(c *fiber.Ctx) error {
	id, ok := todoID(c)
	if !ok {
		return h.deleteMissing(c)
	}

	_, found, err := h.repo.FindByID(c.UserContext(), id)
	if err != nil {
		log.Errorw("Failed to fetch todo", "id", id, "error", err)
		return response.InternalServerError(c, "Failed to fetch todo")
	}
	if !found {
		return h.deleteMissing(c)
	}

	if err := h.repo.DeleteByID(c.UserContext(), id); err != nil {
		log.Errorw("Failed to delete todo", "id", id, "error", err)
		return response.InternalServerError(c, "Failed to delete todo")
	}

	return response.Empty(c, fiber.StatusOK)
}

func (h *TodoHandler) deleteMissing(c *fiber.Ctx) error {
	if h.config.DeleteMissingOK {
		return response.Empty(c, fiber.StatusOK)
	}
	return response.Empty(c, fiber.StatusNotFound)
}
