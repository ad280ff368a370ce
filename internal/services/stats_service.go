package services

import (
	"sort"
	"time"

	"github.com/terraincognita07/emerald/internal/models"
)

// recentCycleWindow limits averages to the latest cycles.
const recentCycleWindow = 6

type CycleHistoryStats struct {
	CycleStarts         []time.Time        `json:"cycle_starts"`
	CycleLengths        []int              `json:"cycle_lengths"`
	AverageCycleLength  float64            `json:"average_cycle_length"`
	MedianCycleLength   int                `json:"median_cycle_length"`
	AveragePeriodLength float64            `json:"average_period_length"`
	HasReliableTrend    bool               `json:"has_reliable_trend"`
	SymptomFrequencies  []SymptomFrequency `json:"symptom_frequencies"`
}

type SymptomFrequency struct {
	Name      string `json:"name"`
	Count     int    `json:"count"`
	TotalDays int    `json:"total_days"`
}

type StatsService struct {
	tracker  *TrackerService
	symptoms *SymptomService
}

func NewStatsService(tracker *TrackerService, symptoms *SymptomService) *StatsService {
	return &StatsService{tracker: tracker, symptoms: symptoms}
}

func (service *StatsService) Build() (CycleHistoryStats, error) {
	periodLog, err := service.tracker.PeriodLog()
	if err != nil {
		return CycleHistoryStats{}, err
	}
	byDate, err := service.symptoms.All()
	if err != nil {
		return CycleHistoryStats{}, err
	}

	stats := BuildCycleHistoryStats(periodLog)
	stats.SymptomFrequencies = CalculateSymptomFrequencies(byDate)
	return stats, nil
}

// BuildCycleHistoryStats summarises completed cycles between detected starts.
func BuildCycleHistoryStats(periodLog *models.PeriodLog) CycleHistoryStats {
	starts := DetectCycleStarts(periodLog, DefaultCycleGapThresholdDays)
	stats := CycleHistoryStats{
		CycleStarts:        starts,
		CycleLengths:       cycleLengths(starts),
		SymptomFrequencies: []SymptomFrequency{},
	}
	if stats.CycleStarts == nil {
		stats.CycleStarts = []time.Time{}
	}

	recent := tailInts(stats.CycleLengths, recentCycleWindow)
	stats.AverageCycleLength = averageInts(recent)
	stats.MedianCycleLength = medianInt(recent)
	stats.HasReliableTrend = len(stats.CycleLengths) >= 3

	periodLengths := make([]int, 0, len(starts))
	for _, start := range starts {
		periodLengths = append(periodLengths, bleedingRunLength(periodLog, start))
	}
	stats.AveragePeriodLength = averageInts(tailInts(periodLengths, recentCycleWindow))
	return stats
}

// CalculateSymptomFrequencies counts on how many annotated days each tag occurs,
// most frequent first.
func CalculateSymptomFrequencies(byDate models.SymptomsByDate) []SymptomFrequency {
	totalDays := len(byDate)
	counts := make(map[string]int)
	for _, tags := range byDate {
		for _, tag := range uniqueStrings(tags) {
			counts[tag]++
		}
	}

	frequencies := make([]SymptomFrequency, 0, len(counts))
	for name, count := range counts {
		frequencies = append(frequencies, SymptomFrequency{Name: name, Count: count, TotalDays: totalDays})
	}
	sort.Slice(frequencies, func(i, j int) bool {
		if frequencies[i].Count == frequencies[j].Count {
			return frequencies[i].Name < frequencies[j].Name
		}
		return frequencies[i].Count > frequencies[j].Count
	})
	return frequencies
}

func bleedingRunLength(periodLog *models.PeriodLog, start time.Time) int {
	length := 0
	for day := start; periodLog.Contains(day) && length < MaxPeriodRangeDays; day = day.AddDate(0, 0, 1) {
		length++
	}
	return length
}

func cycleLengths(starts []time.Time) []int {
	if len(starts) < 2 {
		return []int{}
	}
	lengths := make([]int, 0, len(starts)-1)
	for index := 1; index < len(starts); index++ {
		lengths = append(lengths, DaysBetween(starts[index-1], starts[index]))
	}
	return lengths
}

func tailInts(values []int, n int) []int {
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func medianInt(values []int) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return int(float64(sorted[mid-1]+sorted[mid])/2 + 0.5)
}
