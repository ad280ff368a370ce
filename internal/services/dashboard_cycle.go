package services

import (
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

const (
	PregnancyChanceLow    = "low"
	PregnancyChanceMedium = "medium"
	PregnancyChanceHigh   = "high"
)

// fertileMarginDays widens the fertile window for the "medium" chance label.
const fertileMarginDays = 2

type CycleOverview struct {
	HasData                 bool              `json:"has_data"`
	Today                   time.Time         `json:"today"`
	CycleLength             int               `json:"cycle_length"`
	PeriodLength            int               `json:"period_length"`
	CycleStart              time.Time         `json:"cycle_start"`
	CycleDay                int               `json:"cycle_day"`
	Phase                   models.PhaseLabel `json:"phase"`
	NextPeriod              time.Time         `json:"next_period"`
	Ovulation               time.Time         `json:"ovulation"`
	FertileWindow           []time.Time       `json:"fertile_window"`
	Stale                   bool              `json:"stale"`
	UpcomingPeriod          time.Time         `json:"upcoming_period"`
	DaysUntilUpcomingPeriod int               `json:"days_until_upcoming_period"`
	UpcomingOvulation       time.Time         `json:"upcoming_ovulation"`
	PregnancyChance         string            `json:"pregnancy_chance"`
}

// ClampCycleLength keeps a cycle length inside the supported range.
func ClampCycleLength(cycleLength int) int {
	switch {
	case cycleLength < models.MinCycleLength:
		return models.MinCycleLength
	case cycleLength > models.MaxCycleLength:
		return models.MaxCycleLength
	default:
		return cycleLength
	}
}

func ClampPeriodLength(periodLength int) int {
	switch {
	case periodLength <= 0:
		return models.DefaultPeriodLength
	case periodLength < models.MinPeriodLength:
		return models.MinPeriodLength
	case periodLength > models.MaxPeriodLength:
		return models.MaxPeriodLength
	default:
		return periodLength
	}
}

// NormalizeCycleSettings applies defaults for unset values and clamps the rest.
func NormalizeCycleSettings(settings models.CycleSettings) models.CycleSettings {
	if settings.CycleLength == 0 {
		settings.CycleLength = models.DefaultCycleLength
	}
	settings.CycleLength = ClampCycleLength(settings.CycleLength)
	settings.PeriodLength = ClampPeriodLength(settings.PeriodLength)
	return settings
}

// ResolveCycleStart infers the current cycle start, falling back to today when
// nothing has been logged.
func ResolveCycleStart(periodLog *models.PeriodLog, today time.Time) (time.Time, bool) {
	start, err := FindCurrentCycleStart(periodLog, DefaultCycleGapThresholdDays)
	if err != nil {
		return DateAtLocation(today, today.Location()), false
	}
	return start, true
}

// ProjectCycleStart returns the start of the modelled cycle containing today and
// the one-based day of that cycle. Days before lastPeriodStart wrap backwards.
func ProjectCycleStart(lastPeriodStart time.Time, cycleLength int, today time.Time) (time.Time, int, bool) {
	if lastPeriodStart.IsZero() || cycleLength <= 0 {
		return time.Time{}, 0, false
	}
	offset := CycleOffset(today, lastPeriodStart, cycleLength)
	projectedStart := today.AddDate(0, 0, -offset)
	return DateAtLocation(projectedStart, today.Location()), offset + 1, true
}

func BuildCycleOverview(periodLog *models.PeriodLog, settings models.CycleSettings, now time.Time, location *time.Location) CycleOverview {
	if location == nil {
		location = time.UTC
	}
	settings = NormalizeCycleSettings(settings)
	today := DateAtLocation(now, location)
	cycleStart, hasData := ResolveCycleStart(periodLog, today)

	nextPeriod := PredictNextPeriod(cycleStart, settings.CycleLength)
	ovulation := PredictOvulation(nextPeriod)
	overview := CycleOverview{
		HasData:       hasData,
		Today:         today,
		CycleLength:   settings.CycleLength,
		PeriodLength:  settings.PeriodLength,
		CycleStart:    cycleStart,
		Phase:         ClassifyPhase(today, periodLog, cycleStart, settings.CycleLength),
		NextPeriod:    nextPeriod,
		Ovulation:     ovulation,
		FertileWindow: FertileWindow(ovulation),
		Stale:         !today.Before(nextPeriod),
	}

	projectedStart, cycleDay, _ := ProjectCycleStart(cycleStart, settings.CycleLength, today)
	overview.CycleDay = cycleDay
	if DaysBetween(cycleStart, today) < 0 {
		overview.CycleDay = 0
	}

	overview.UpcomingPeriod = PredictNextPeriod(projectedStart, settings.CycleLength)
	overview.DaysUntilUpcomingPeriod = DaysBetween(today, overview.UpcomingPeriod)

	projectedOvulation := PredictOvulation(overview.UpcomingPeriod)
	followingOvulation := PredictOvulation(PredictNextPeriod(overview.UpcomingPeriod, settings.CycleLength))
	overview.UpcomingOvulation = projectedOvulation
	if projectedOvulation.Before(today) {
		overview.UpcomingOvulation = followingOvulation
	}
	// Short cycles put the next window's margin inside the current cycle.
	overview.PregnancyChance = highestPregnancyChance(
		PregnancyChance(today, projectedOvulation),
		PregnancyChance(today, followingOvulation),
	)
	return overview
}

func highestPregnancyChance(chances ...string) string {
	rank := map[string]int{PregnancyChanceLow: 0, PregnancyChanceMedium: 1, PregnancyChanceHigh: 2}
	highest := PregnancyChanceLow
	for _, chance := range chances {
		if rank[chance] > rank[highest] {
			highest = chance
		}
	}
	return highest
}

// PregnancyChance grades day against the fertile window around ovulation.
func PregnancyChance(day time.Time, ovulation time.Time) string {
	window := FertileWindow(ovulation)
	start, end := window[0], window[len(window)-1]
	if betweenCalendarDaysInclusive(day, start, end) {
		return PregnancyChanceHigh
	}
	if betweenCalendarDaysInclusive(day, start.AddDate(0, 0, -fertileMarginDays), end.AddDate(0, 0, fertileMarginDays)) {
		return PregnancyChanceMedium
	}
	return PregnancyChanceLow
}
