package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

// MaxPeriodRangeDays bounds a single "log period" action.
const MaxPeriodRangeDays = 15

var ErrInvalidPeriodDuration = errors.New("invalid period duration")

// ExpandPeriodRange returns one day per day of flow starting at start.
func ExpandPeriodRange(start time.Time, durationDays int) ([]time.Time, error) {
	if durationDays < 1 || durationDays > MaxPeriodRangeDays {
		return nil, ErrInvalidPeriodDuration
	}

	first := DateAtLocation(start, start.Location())
	days := make([]time.Time, 0, durationDays)
	for offset := 0; offset < durationDays; offset++ {
		days = append(days, first.AddDate(0, 0, offset))
	}
	return days, nil
}

// MergePeriodRange unions the expanded range into periodLog and reports how many
// days were new.
func MergePeriodRange(periodLog *models.PeriodLog, start time.Time, durationDays int) (int, error) {
	days, err := ExpandPeriodRange(start, durationDays)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, day := range days {
		if periodLog.Add(day) {
			added++
		}
	}
	return added, nil
}

// RemovePeriodRange deletes every day of the expanded range and reports how many
// were present.
func RemovePeriodRange(periodLog *models.PeriodLog, start time.Time, durationDays int) (int, error) {
	days, err := ExpandPeriodRange(start, durationDays)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, day := range days {
		if periodLog.Remove(day) {
			removed++
		}
	}
	return removed, nil
}
