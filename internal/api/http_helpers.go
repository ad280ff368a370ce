package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/emerald/internal/services"
	"go.uber.org/zap"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// serviceError maps known service failures to client errors and logs the rest.
func (handler *Handler) serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrInvalidPeriodDuration):
		return apiError(c, fiber.StatusBadRequest, "days must be between 1 and 15")
	case errors.Is(err, services.ErrInvalidMood):
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	case errors.Is(err, services.ErrHealthLogNoteTooLong):
		return apiError(c, fiber.StatusBadRequest, "note is too long")
	case errors.Is(err, services.ErrInvalidSymptomTag):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom tag")
	case errors.Is(err, services.ErrHealthLogEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "health log entry not found")
	}
	handler.logger.Error(fallback, zap.String("path", c.Path()), zap.Error(err))
	return apiError(c, fiber.StatusInternalServerError, fallback)
}
