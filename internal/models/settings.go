package models

const (
	DefaultCycleLength  = 28
	MinCycleLength      = 20
	MaxCycleLength      = 45
	DefaultPeriodLength = 5
	MinPeriodLength     = 1
	MaxPeriodLength     = 10
	LutealPhaseDays     = 14
)

type CycleSettings struct {
	CycleLength  int `json:"cycleLength"`
	PeriodLength int `json:"periodLength"`
}

func DefaultCycleSettings() CycleSettings {
	return CycleSettings{
		CycleLength:  DefaultCycleLength,
		PeriodLength: DefaultPeriodLength,
	}
}
