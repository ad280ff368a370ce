package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

// DefaultCycleGapThresholdDays separates two bleeding blocks: a longer gap between
// consecutive logged days starts a new period.
const DefaultCycleGapThresholdDays = 10

// PhaseUnknown is returned when the cycle length cannot be used for classification.
const PhaseUnknown models.PhaseLabel = "unknown"

var ErrEmptyPeriodLog = errors.New("period log is empty")

// DetectCycleStarts returns the first day of every contiguous bleeding block in
// ascending order.
func DetectCycleStarts(periodLog *models.PeriodLog, gapThresholdDays int) []time.Time {
	sorted := periodLog.Sorted()
	if len(sorted) == 0 {
		return nil
	}
	if gapThresholdDays < 0 {
		gapThresholdDays = DefaultCycleGapThresholdDays
	}

	starts := []time.Time{sorted[0]}
	for index := 1; index < len(sorted); index++ {
		if DaysBetween(sorted[index-1], sorted[index]) > gapThresholdDays {
			starts = append(starts, sorted[index])
		}
	}
	return starts
}

// FindCurrentCycleStart infers the most recent menstrual onset from logged days.
func FindCurrentCycleStart(periodLog *models.PeriodLog, gapThresholdDays int) (time.Time, error) {
	starts := DetectCycleStarts(periodLog, gapThresholdDays)
	if len(starts) == 0 {
		return time.Time{}, ErrEmptyPeriodLog
	}
	return starts[len(starts)-1], nil
}

func PredictNextPeriod(cycleStart time.Time, cycleLength int) time.Time {
	return cycleStart.AddDate(0, 0, cycleLength)
}

func PredictOvulation(nextPeriod time.Time) time.Time {
	return nextPeriod.AddDate(0, 0, -models.LutealPhaseDays)
}

// FertileWindow lists every day from five days before ovulation through the day after.
func FertileWindow(ovulation time.Time) []time.Time {
	window := make([]time.Time, 0, 7)
	for offset := -5; offset <= 1; offset++ {
		window = append(window, ovulation.AddDate(0, 0, offset))
	}
	return window
}

// CycleOffset is the zero-based position of day inside its cycle. Days before
// cycleStart wrap into the previous cycle.
func CycleOffset(day time.Time, cycleStart time.Time, cycleLength int) int {
	if cycleLength <= 0 {
		return 0
	}
	elapsed := DaysBetween(cycleStart, day)
	return ((elapsed % cycleLength) + cycleLength) % cycleLength
}

// ClassifyPhase labels day. Logged period days are always menstrual; other days
// use fixed boundaries derived from a 14 day luteal phase, independent of period length.
func ClassifyPhase(day time.Time, periodLog *models.PeriodLog, cycleStart time.Time, cycleLength int) models.PhaseLabel {
	if periodLog.Contains(day) {
		return models.PhaseMenstrual
	}
	if cycleLength <= 0 {
		return PhaseUnknown
	}

	dayOfCycle := CycleOffset(day, cycleStart, cycleLength)
	switch {
	case dayOfCycle < cycleLength-19:
		return models.PhaseFollicular
	case dayOfCycle <= cycleLength-13:
		return models.PhaseOvulatory
	default:
		return models.PhaseLuteal
	}
}

// ToggleSymptom adds tag when absent and removes it when present. The input is not modified.
func ToggleSymptom(tags []string, tag string) []string {
	for _, existing := range tags {
		if existing == tag {
			return RemoveString(tags, tag)
		}
	}
	toggled := make([]string, 0, len(tags)+1)
	toggled = append(toggled, tags...)
	return append(toggled, tag)
}
