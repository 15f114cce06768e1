package api

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	fiberutils "github.com/gofiber/fiber/v2/utils"
	"github.com/sahilchouksey/todos-api/utils/response"
)

const shutdownTimeout = 10 * time.Second

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app: fiber.New(fiber.Config{
			AppName:               "todos-api",
			DisableStartupMessage: true,
			ErrorHandler:          ErrorHandler,
		}),
		listenAddress: listenAddress,
	}
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

// Run blocks until the server stops. A clean Shutdown returns nil.
func (s *APIServer) Run() error {
	log.Infow("Starting API Server", "address", s.listenAddress)
	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown() error {
	log.Info("Shutting down API Server")
	return s.app.ShutdownWithTimeout(shutdownTimeout)
}

// ErrorHandler renders errors that escape handlers (unknown routes, body
// limits, panics turned into errors) in the standard error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Errorw("Unhandled error", "method", c.Method(), "path", c.Path(), "error", err)
	}

	if code == fiber.StatusNotFound {
		return response.NotFound(c, message)
	}
	return response.Error(c, code, message, errorCode(code))
}

// errorCode turns a status into an upper snake case code, e.g. METHOD_NOT_ALLOWED
func errorCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(fiberutils.StatusMessage(status), " ", "_"))
}
