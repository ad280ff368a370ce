package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation(models.DayLayout, raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func periodLogOf(t *testing.T, raw ...string) *models.PeriodLog {
	t.Helper()
	log := models.NewPeriodLog()
	for _, day := range raw {
		log.Add(mustParseDay(t, day))
	}
	return log
}

func TestDetectCycleStarts(t *testing.T) {
	log := periodLogOf(t,
		"2025-02-26",
		"2025-01-01", "2025-01-02", "2025-01-03",
		"2025-01-29", "2025-01-30",
	)

	starts := DetectCycleStarts(log, DefaultCycleGapThresholdDays)
	expected := []string{"2025-01-01", "2025-01-29", "2025-02-26"}
	if len(starts) != len(expected) {
		t.Fatalf("expected %d cycle starts, got %d", len(expected), len(starts))
	}
	for i, day := range starts {
		if day.Format(models.DayLayout) != expected[i] {
			t.Fatalf("expected cycle start %s, got %s", expected[i], day.Format(models.DayLayout))
		}
	}
}

func TestFindCurrentCycleStartPicksLatestBlock(t *testing.T) {
	log := periodLogOf(t,
		"2024-12-24", "2024-12-25", "2024-12-26", "2024-12-27", "2024-12-28",
		"2025-01-20", "2025-01-21", "2025-01-22", "2025-01-23", "2025-01-24",
	)

	start, err := FindCurrentCycleStart(log, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format(models.DayLayout) != "2025-01-20" {
		t.Fatalf("expected 2025-01-20, got %s", start.Format(models.DayLayout))
	}
}

func TestFindCurrentCycleStartGapThresholdBoundary(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want string
	}{
		{name: "gap equal to threshold stays in block", days: []string{"2025-01-01", "2025-01-11"}, want: "2025-01-01"},
		{name: "gap above threshold starts new block", days: []string{"2025-01-01", "2025-01-12"}, want: "2025-01-12"},
		{name: "single day", days: []string{"2025-03-03"}, want: "2025-03-03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, err := FindCurrentCycleStart(periodLogOf(t, tt.days...), DefaultCycleGapThresholdDays)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if start.Format(models.DayLayout) != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, start.Format(models.DayLayout))
			}
		})
	}
}

func TestFindCurrentCycleStartRejectsEmptyLog(t *testing.T) {
	if _, err := FindCurrentCycleStart(models.NewPeriodLog(), DefaultCycleGapThresholdDays); !errors.Is(err, ErrEmptyPeriodLog) {
		t.Fatalf("expected ErrEmptyPeriodLog, got %v", err)
	}
	if _, err := FindCurrentCycleStart(nil, DefaultCycleGapThresholdDays); !errors.Is(err, ErrEmptyPeriodLog) {
		t.Fatalf("expected ErrEmptyPeriodLog for nil log, got %v", err)
	}
}

func TestPredictionChain(t *testing.T) {
	start := mustParseDay(t, "2025-01-20")

	next := PredictNextPeriod(start, 28)
	if next.Format(models.DayLayout) != "2025-02-17" {
		t.Fatalf("unexpected next period: %s", next.Format(models.DayLayout))
	}
	ovulation := PredictOvulation(next)
	if ovulation.Format(models.DayLayout) != "2025-02-03" {
		t.Fatalf("unexpected ovulation: %s", ovulation.Format(models.DayLayout))
	}

	window := FertileWindow(ovulation)
	if len(window) != 7 {
		t.Fatalf("expected 7 fertile days, got %d", len(window))
	}
	if window[0].Format(models.DayLayout) != "2025-01-29" || window[6].Format(models.DayLayout) != "2025-02-04" {
		t.Fatalf("unexpected fertile window %s..%s", window[0].Format(models.DayLayout), window[6].Format(models.DayLayout))
	}
}

func TestPredictNextPeriodCrossesLeapDay(t *testing.T) {
	next := PredictNextPeriod(mustParseDay(t, "2024-02-10"), 28)
	if next.Format(models.DayLayout) != "2024-03-09" {
		t.Fatalf("expected 2024-03-09, got %s", next.Format(models.DayLayout))
	}
}

func TestClassifyPhase(t *testing.T) {
	log := periodLogOf(t, "2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05")
	cycleStart := mustParseDay(t, "2025-01-01")

	tests := []struct {
		day         string
		cycleLength int
		want        models.PhaseLabel
	}{
		{day: "2025-01-01", cycleLength: 28, want: models.PhaseMenstrual},
		{day: "2025-01-05", cycleLength: 28, want: models.PhaseMenstrual},
		{day: "2025-01-06", cycleLength: 28, want: models.PhaseFollicular},
		{day: "2025-01-09", cycleLength: 28, want: models.PhaseFollicular},
		{day: "2025-01-10", cycleLength: 28, want: models.PhaseOvulatory},
		{day: "2025-01-16", cycleLength: 28, want: models.PhaseOvulatory},
		{day: "2025-01-17", cycleLength: 28, want: models.PhaseLuteal},
		{day: "2025-01-28", cycleLength: 28, want: models.PhaseLuteal},
		{day: "2025-01-29", cycleLength: 28, want: models.PhaseFollicular},
		{day: "2024-12-31", cycleLength: 28, want: models.PhaseLuteal},
		{day: "2025-01-06", cycleLength: 20, want: models.PhaseOvulatory},
		{day: "2025-01-10", cycleLength: 35, want: models.PhaseFollicular},
		{day: "2025-01-20", cycleLength: 35, want: models.PhaseOvulatory},
		{day: "2025-01-17", cycleLength: 0, want: PhaseUnknown},
		{day: "2025-01-03", cycleLength: 0, want: models.PhaseMenstrual},
	}

	for _, tt := range tests {
		got := ClassifyPhase(mustParseDay(t, tt.day), log, cycleStart, tt.cycleLength)
		if got != tt.want {
			t.Fatalf("day %s with cycle length %d: expected %s, got %s", tt.day, tt.cycleLength, tt.want, got)
		}
	}
}

func TestCycleOffsetWrapsBeforeStart(t *testing.T) {
	start := mustParseDay(t, "2025-01-01")
	if got := CycleOffset(mustParseDay(t, "2024-12-31"), start, 28); got != 27 {
		t.Fatalf("expected 27, got %d", got)
	}
	if got := CycleOffset(mustParseDay(t, "2025-02-26"), start, 28); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := CycleOffset(mustParseDay(t, "2025-02-26"), start, 0); got != 0 {
		t.Fatalf("expected 0 for invalid length, got %d", got)
	}
}

func TestToggleSymptom(t *testing.T) {
	original := []string{"Cramps", "Acne"}

	added := ToggleSymptom(original, "Headache")
	if len(added) != 3 || added[2] != "Headache" {
		t.Fatalf("expected Headache appended, got %#v", added)
	}
	removed := ToggleSymptom(original, "Cramps")
	if len(removed) != 1 || removed[0] != "Acne" {
		t.Fatalf("expected only Acne, got %#v", removed)
	}
	if len(original) != 2 || original[0] != "Cramps" || original[1] != "Acne" {
		t.Fatalf("input mutated: %#v", original)
	}
	if got := ToggleSymptom(nil, "Spotting"); len(got) != 1 {
		t.Fatalf("expected one tag from nil input, got %#v", got)
	}
}
