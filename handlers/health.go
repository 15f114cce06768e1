package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/sahilchouksey/todos-api/database"
	"github.com/sahilchouksey/todos-api/utils/response"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		log.Warnw("Store health check failed", "error", err)
		return response.ServiceUnavailable(c, "Store is unavailable")
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
