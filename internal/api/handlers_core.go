package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ClearAllData removes every namespaced entry and leaves foreign keys alone.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.store.Clear(); err != nil {
		return handler.serviceError(c, err, "failed to clear data")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
