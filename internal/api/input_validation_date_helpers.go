package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
	"github.com/terraincognita07/emerald/internal/services"
)

const monthLayout = "2006-01"

var errDateRequired = errors.New("date is required")

// parseDayParam reads a yyyy-MM-dd value as local midnight in location.
func parseDayParam(raw string, location *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, errDateRequired
	}
	parsed, err := time.ParseInLocation(models.DayLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return services.DateAtLocation(parsed, location), nil
}

// parseTodayQuery reads an optional "today" override; a missing value means now.
func parseTodayQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	return parseDayParam(raw, location)
}

// parseMonthQuery returns the first day of the yyyy-MM month, or of the current
// month when raw is empty.
func parseMonthQuery(raw string, now time.Time, location *time.Location) (time.Time, error) {
	anchor := now.In(location)
	if raw != "" {
		parsed, err := time.ParseInLocation(monthLayout, raw, location)
		if err != nil {
			return time.Time{}, err
		}
		anchor = parsed
	}
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, location), nil
}
