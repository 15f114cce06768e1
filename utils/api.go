package utils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/sahilchouksey/todos-api/utils/response"
)

// MakeHTTPHandleFunc binds store to a handler. Errors the handler returns
// without writing a response become a 500 envelope.
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			log.Errorw("Handler failed", "path", c.Path(), "error", err)
			return response.InternalServerError(c, err.Error())
		}
		return nil
	}
}
