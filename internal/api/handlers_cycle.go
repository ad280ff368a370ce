package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetCycleOverview(c *fiber.Ctx) error {
	today, err := parseTodayQuery(c.Query("today"), handler.now(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today")
	}
	overview, err := handler.tracker.Overview(today)
	if err != nil {
		return handler.serviceError(c, err, "failed to build cycle overview")
	}
	return c.JSON(overview)
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	now := handler.now()
	month, err := parseMonthQuery(c.Query("month"), now, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}
	days, hasData, err := handler.tracker.Calendar(month, now)
	if err != nil {
		return handler.serviceError(c, err, "failed to build calendar")
	}
	return c.JSON(fiber.Map{
		"month":    month.Format(monthLayout),
		"has_data": hasData,
		"days":     days,
	})
}

func (handler *Handler) GetPeriodDates(c *fiber.Ctx) error {
	periodLog, err := handler.tracker.PeriodLog()
	if err != nil {
		return handler.serviceError(c, err, "failed to load period dates")
	}
	return c.JSON(fiber.Map{"dates": periodLog.Keys()})
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	payload, start, message := handler.parsePeriodRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	added, err := handler.tracker.LogPeriod(start, payload.Days)
	if err != nil {
		return handler.serviceError(c, err, "failed to log period")
	}
	return handler.respondWithPeriodDates(c, fiber.StatusOK, fiber.Map{"added": added})
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	payload, start, message := handler.parsePeriodRange(c)
	if message != "" {
		return apiError(c, fiber.StatusBadRequest, message)
	}
	removed, err := handler.tracker.RemovePeriod(start, payload.Days)
	if err != nil {
		return handler.serviceError(c, err, "failed to remove period")
	}
	return handler.respondWithPeriodDates(c, fiber.StatusOK, fiber.Map{"removed": removed})
}

// parsePeriodRange returns a client error message when the body is unusable.
func (handler *Handler) parsePeriodRange(c *fiber.Ctx) (periodRangePayload, time.Time, string) {
	payload := periodRangePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return payload, time.Time{}, "invalid payload"
	}
	start, err := parseDayParam(payload.Start, handler.location)
	if err != nil {
		return payload, time.Time{}, "invalid start date"
	}
	return payload, start, ""
}

func (handler *Handler) respondWithPeriodDates(c *fiber.Ctx, status int, body fiber.Map) error {
	periodLog, err := handler.tracker.PeriodLog()
	if err != nil {
		return handler.serviceError(c, err, "failed to load period dates")
	}
	body["dates"] = periodLog.Keys()
	return c.Status(status).JSON(body)
}
