package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/emerald/internal/models"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.settings.Get()
	if err != nil {
		return handler.serviceError(c, err, "failed to load settings")
	}
	return c.JSON(settings)
}

// UpdateSettings clamps out-of-range values instead of rejecting them; omitted
// fields keep their stored value.
func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	payload := settingsPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.CycleLength < 0 || payload.PeriodLength < 0 {
		return apiError(c, fiber.StatusBadRequest, "lengths must be positive")
	}

	settings, err := handler.settings.Update(models.CycleSettings{
		CycleLength:  payload.CycleLength,
		PeriodLength: payload.PeriodLength,
	})
	if err != nil {
		return handler.serviceError(c, err, "failed to save settings")
	}
	return c.JSON(settings)
}

// ResetSettings forgets the stored settings and returns the defaults.
func (handler *Handler) ResetSettings(c *fiber.Ctx) error {
	if err := handler.settings.Reset(); err != nil {
		return handler.serviceError(c, err, "failed to reset settings")
	}
	return handler.GetSettings(c)
}
