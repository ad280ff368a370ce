package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/emerald/internal/models"
	"github.com/terraincognita07/emerald/internal/services"
)

func healthLogInput(payload healthLogPayload) services.HealthLogInput {
	return services.HealthLogInput{
		Mood:     payload.Mood,
		Symptoms: payload.Symptoms,
		Note:     payload.Note,
	}
}

// ListHealthLogs returns newest entries first unless ?order=oldest is given.
func (handler *Handler) ListHealthLogs(c *fiber.Ctx) error {
	var (
		entries []models.HealthLogEntry
		err     error
	)
	if c.Query("order") == "oldest" {
		entries, err = handler.health.List()
	} else {
		entries, err = handler.health.ListRecentFirst()
	}
	if err != nil {
		return handler.serviceError(c, err, "failed to load health logs")
	}
	return c.JSON(entries)
}

func (handler *Handler) CreateHealthLog(c *fiber.Ctx) error {
	payload := healthLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	entry, err := handler.health.Append(healthLogInput(payload), handler.now())
	if err != nil {
		return handler.serviceError(c, err, "failed to save health log")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateHealthLog(c *fiber.Ctx) error {
	payload := healthLogPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	entry, err := handler.health.Update(c.Params("id"), healthLogInput(payload))
	if err != nil {
		return handler.serviceError(c, err, "failed to update health log")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteHealthLog(c *fiber.Ctx) error {
	if err := handler.health.Delete(c.Params("id")); err != nil {
		return handler.serviceError(c, err, "failed to delete health log")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteMatchingHealthLog removes one entry equal to the posted body. It exists
// for entries saved before identifiers were assigned.
func (handler *Handler) DeleteMatchingHealthLog(c *fiber.Ctx) error {
	target := models.HealthLogEntry{}
	if err := c.BodyParser(&target); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if err := handler.health.DeleteMatching(target); err != nil {
		return handler.serviceError(c, err, "failed to delete health log")
	}
	return c.SendStatus(fiber.StatusNoContent)
}
