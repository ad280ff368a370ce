package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/emerald/internal/models"
)

func (handler *Handler) ListSymptomCategories(c *fiber.Ctx) error {
	return c.JSON(models.DefaultSymptomCategories())
}

func (handler *Handler) GetAllSymptoms(c *fiber.Ctx) error {
	byDate, err := handler.symptoms.All()
	if err != nil {
		return handler.serviceError(c, err, "failed to load symptoms")
	}
	return c.JSON(byDate)
}

func (handler *Handler) ListSymptomDays(c *fiber.Ctx) error {
	days, err := handler.symptoms.Days()
	if err != nil {
		return handler.serviceError(c, err, "failed to load symptoms")
	}
	return c.JSON(fiber.Map{"days": days})
}

func (handler *Handler) GetDaySymptoms(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	tags, recorded, err := handler.symptoms.ForDay(day)
	if err != nil {
		return handler.serviceError(c, err, "failed to load symptoms")
	}
	if tags == nil {
		tags = []string{}
	}
	return c.JSON(fiber.Map{
		"date":     day.Format(models.DayLayout),
		"recorded": recorded,
		"symptoms": tags,
	})
}

func (handler *Handler) ToggleDaySymptom(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	payload := symptomTogglePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	tags, err := handler.symptoms.Toggle(day, payload.Tag)
	if err != nil {
		return handler.serviceError(c, err, "failed to save symptoms")
	}
	return c.JSON(fiber.Map{
		"date":     day.Format(models.DayLayout),
		"recorded": len(tags) > 0,
		"symptoms": tags,
	})
}

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	stats, err := handler.stats.Build()
	if err != nil {
		return handler.serviceError(c, err, "failed to build stats")
	}
	return c.JSON(stats)
}
