package models

import (
	"sort"
	"time"
)

// DayLayout is the calendar-day key format used for period dates and symptom maps.
const DayLayout = "2006-01-02"

// PeriodLog is the set of calendar days on which flow was recorded, keyed by DayLayout.
type PeriodLog struct {
	days map[string]time.Time
}

func NewPeriodLog(dates ...time.Time) *PeriodLog {
	log := &PeriodLog{days: make(map[string]time.Time, len(dates))}
	for _, date := range dates {
		log.Add(date)
	}
	return log
}

// ParsePeriodLog builds a log from stored day keys. Keys that do not parse are skipped
// and returned so callers can report them.
func ParsePeriodLog(keys []string, location *time.Location) (*PeriodLog, []string) {
	if location == nil {
		location = time.UTC
	}
	log := NewPeriodLog()
	invalid := make([]string, 0)
	for _, key := range keys {
		day, err := time.ParseInLocation(DayLayout, key, location)
		if err != nil {
			invalid = append(invalid, key)
			continue
		}
		log.Add(day)
	}
	return log, invalid
}

func (log *PeriodLog) ensure() {
	if log.days == nil {
		log.days = make(map[string]time.Time)
	}
}

// Add records a day. Time of day is discarded; adding the same day twice is a no-op.
func (log *PeriodLog) Add(date time.Time) bool {
	log.ensure()
	key := date.Format(DayLayout)
	if _, exists := log.days[key]; exists {
		return false
	}
	year, month, day := date.Date()
	log.days[key] = time.Date(year, month, day, 0, 0, 0, 0, date.Location())
	return true
}

func (log *PeriodLog) Remove(date time.Time) bool {
	if log == nil || log.days == nil {
		return false
	}
	key := date.Format(DayLayout)
	if _, exists := log.days[key]; !exists {
		return false
	}
	delete(log.days, key)
	return true
}

func (log *PeriodLog) Contains(date time.Time) bool {
	if log == nil || log.days == nil {
		return false
	}
	_, exists := log.days[date.Format(DayLayout)]
	return exists
}

func (log *PeriodLog) Len() int {
	if log == nil {
		return 0
	}
	return len(log.days)
}

// Sorted returns the logged days in ascending order.
func (log *PeriodLog) Sorted() []time.Time {
	if log == nil {
		return nil
	}
	sorted := make([]time.Time, 0, len(log.days))
	for _, day := range log.days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})
	return sorted
}

// Keys returns the ascending day keys, the shape the log is persisted in.
func (log *PeriodLog) Keys() []string {
	sorted := log.Sorted()
	keys := make([]string, 0, len(sorted))
	for _, day := range sorted {
		keys = append(keys, day.Format(DayLayout))
	}
	return keys
}
