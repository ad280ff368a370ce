package services

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/terraincognita07/emerald/internal/models"
)

var propertyEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func TestProperty_OverlappingRangesNeverDuplicateDays(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("merged ranges hold each calendar day once", prop.ForAll(
		func(startOffset int, firstDuration int, shift int, secondDuration int) bool {
			log := models.NewPeriodLog()
			start := propertyEpoch.AddDate(0, 0, startOffset)
			if _, err := MergePeriodRange(log, start, firstDuration); err != nil {
				return false
			}
			if _, err := MergePeriodRange(log, start.AddDate(0, 0, shift), secondDuration); err != nil {
				return false
			}
			again, err := MergePeriodRange(log, start, firstDuration)
			if err != nil || again != 0 {
				return false
			}

			keys := log.Keys()
			for index := 1; index < len(keys); index++ {
				if keys[index] <= keys[index-1] {
					return false
				}
			}
			covered := make(map[int]bool)
			for offset := 0; offset < firstDuration; offset++ {
				covered[offset] = true
			}
			for offset := shift; offset < shift+secondDuration; offset++ {
				covered[offset] = true
			}
			return len(keys) == len(covered)
		},
		gen.IntRange(0, 730),
		gen.IntRange(1, MaxPeriodRangeDays),
		gen.IntRange(0, 10),
		gen.IntRange(1, MaxPeriodRangeDays),
	))

	properties.TestingRun(t)
}

func TestProperty_ClassifyPhaseIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	labels := map[models.PhaseLabel]bool{
		models.PhaseMenstrual:  true,
		models.PhaseFollicular: true,
		models.PhaseOvulatory:  true,
		models.PhaseLuteal:     true,
	}

	properties.Property("same inputs give the same label", prop.ForAll(
		func(dayOffset int, cycleLength int, loggedDays int) bool {
			cycleStart := propertyEpoch.AddDate(0, 0, 200)
			log := models.NewPeriodLog()
			if _, err := MergePeriodRange(log, cycleStart, loggedDays); err != nil {
				return false
			}
			day := propertyEpoch.AddDate(0, 0, dayOffset)

			first := ClassifyPhase(day, log, cycleStart, cycleLength)
			second := ClassifyPhase(day, log, cycleStart, cycleLength)
			return first == second && labels[first]
		},
		gen.IntRange(0, 500),
		gen.IntRange(models.MinCycleLength, models.MaxCycleLength),
		gen.IntRange(1, 10),
	))

	properties.Property("cycle offset is periodic in the cycle length", prop.ForAll(
		func(dayOffset int, cycleLength int) bool {
			cycleStart := propertyEpoch.AddDate(0, 0, 200)
			day := propertyEpoch.AddDate(0, 0, dayOffset)
			offset := CycleOffset(day, cycleStart, cycleLength)
			return offset >= 0 && offset < cycleLength &&
				offset == CycleOffset(day.AddDate(0, 0, cycleLength), cycleStart, cycleLength)
		},
		gen.IntRange(0, 500),
		gen.IntRange(models.MinCycleLength, models.MaxCycleLength),
	))

	properties.TestingRun(t)
}

func TestProperty_FertileWindowSpansSevenDays(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("window runs from five days before to one day after ovulation", prop.ForAll(
		func(offset int) bool {
			ovulation := propertyEpoch.AddDate(0, 0, offset)
			window := FertileWindow(ovulation)
			if len(window) != 7 {
				return false
			}
			for index, day := range window {
				if DaysBetween(ovulation, day) != index-5 {
					return false
				}
			}
			return true
		},
		gen.IntRange(-1000, 1000),
	))

	properties.TestingRun(t)
}
