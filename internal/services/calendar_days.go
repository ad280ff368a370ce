package services

import (
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

type CalendarDayState struct {
	Date        time.Time         `json:"date"`
	DateString  string            `json:"date_string"`
	Day         int               `json:"day"`
	InMonth     bool              `json:"in_month"`
	IsToday     bool              `json:"is_today"`
	Phase       models.PhaseLabel `json:"phase"`
	IsPeriod    bool              `json:"is_period"`
	IsPredicted bool              `json:"is_predicted"`
	IsFertility bool              `json:"is_fertility"`
	IsOvulation bool              `json:"is_ovulation"`
	Symptoms    []string          `json:"symptoms,omitempty"`
}

// BuildCalendarDayStates lays out a Sunday-first grid covering monthStart's month.
// Predictions repeat the modelled cycle forward from the inferred cycle start and
// only mark days after the latest logged period day. An empty log gets no
// period, fertility or ovulation predictions.
func BuildCalendarDayStates(monthStart time.Time, periodLog *models.PeriodLog, symptoms models.SymptomsByDate, settings models.CycleSettings, now time.Time, location *time.Location) []CalendarDayState {
	if location == nil {
		location = time.UTC
	}
	settings = NormalizeCycleSettings(settings)
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, location)
	monthEnd := monthStart.AddDate(0, 1, -1)
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, 6-int(monthEnd.Weekday()))

	today := DateAtLocation(now, location)
	cycleStart, hasData := ResolveCycleStart(periodLog, today)

	latestLogged := time.Time{}
	if sorted := periodLog.Sorted(); len(sorted) > 0 {
		latestLogged = sorted[len(sorted)-1]
	}

	ovulationOffset := settings.CycleLength - models.LutealPhaseDays
	days := make([]CalendarDayState, 0, 42)
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := day.Format(models.DayLayout)
		offset := CycleOffset(day, cycleStart, settings.CycleLength)
		isPeriod := periodLog.Contains(day)
		afterLogged := latestLogged.IsZero() || DaysBetween(latestLogged, day) > 0
		isOvulation := hasData && offset == ovulationOffset
		isFertility := hasData && !isOvulation && offset >= ovulationOffset-5 && offset <= ovulationOffset+1

		days = append(days, CalendarDayState{
			Date:        day,
			DateString:  key,
			Day:         day.Day(),
			InMonth:     day.Month() == monthStart.Month(),
			IsToday:     sameCalendarDay(day, today),
			Phase:       ClassifyPhase(day, periodLog, cycleStart, settings.CycleLength),
			IsPeriod:    isPeriod,
			IsPredicted: hasData && !isPeriod && afterLogged && offset < settings.PeriodLength,
			IsFertility: isFertility,
			IsOvulation: isOvulation,
			Symptoms:    symptoms[key],
		})
	}
	return days
}
