package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	api := app.Group("/api")

	cycle := api.Group("/cycle")
	cycle.Get("", handler.GetCycleOverview)
	cycle.Get("/calendar", handler.GetCalendar)

	period := api.Group("/period")
	period.Get("", handler.GetPeriodDates)
	period.Post("", handler.LogPeriod)
	period.Delete("", handler.DeletePeriod)

	settings := api.Group("/settings")
	settings.Get("", handler.GetSettings)
	settings.Put("", handler.UpdateSettings)
	settings.Delete("", handler.ResetSettings)

	healthLogs := api.Group("/health-logs")
	healthLogs.Get("", handler.ListHealthLogs)
	healthLogs.Post("", handler.CreateHealthLog)
	healthLogs.Post("/delete-matching", handler.DeleteMatchingHealthLog)
	healthLogs.Put("/:id", handler.UpdateHealthLog)
	healthLogs.Delete("/:id", handler.DeleteHealthLog)

	symptoms := api.Group("/symptoms")
	symptoms.Get("", handler.GetAllSymptoms)
	symptoms.Get("/categories", handler.ListSymptomCategories)
	symptoms.Get("/days", handler.ListSymptomDays)
	symptoms.Get("/:date", handler.GetDaySymptoms)
	symptoms.Post("/:date/toggle", handler.ToggleDaySymptom)

	api.Get("/stats", handler.GetStats)
	api.Delete("/data", handler.ClearAllData)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
