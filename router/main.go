package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/todos-api/config"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/sahilchouksey/todos-api/handlers"
	todo_handlers "github.com/sahilchouksey/todos-api/handlers/todo"
	"github.com/sahilchouksey/todos-api/utils"
	"github.com/sahilchouksey/todos-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage, cfg *config.EnvironmentVariable) {
	// Apply security middleware
	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    cfg.ALLOWED_ORIGINS,
		RateLimitRequests: cfg.RATE_LIMIT_REQUESTS,
		RateLimitWindow:   cfg.RATE_LIMIT_WINDOW,
		DisableRequestLog: !cfg.REQUEST_LOG,
	})

	// Health check endpoint
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	todoHandler := todo_handlers.NewTodoHandler(store, todo_handlers.Config{
		DeleteMissingOK: cfg.TODO_DELETE_MISSING_OK,
	})

	// Todo routes
	todos := app.Group("/todos")
	todos.Get("/", todoHandler.ListTodos)
	todos.Post("/", todoHandler.CreateTodo)
	todos.Get("/:id", todoHandler.GetTodo)
	todos.Patch("/:id", todoHandler.UpdateTodo)
	todos.Delete("/:id", todoHandler.DeleteTodo)
}
