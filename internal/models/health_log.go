package models

import "time"

const (
	MoodHappy     = "Happy"
	MoodNeutral   = "Neutral"
	MoodSad       = "Sad"
	MoodAnxious   = "Anxious"
	MoodEnergetic = "Energetic"
)

func Moods() []string {
	return []string{MoodHappy, MoodNeutral, MoodSad, MoodAnxious, MoodEnergetic}
}

func IsValidMood(mood string) bool {
	if mood == "" {
		return true
	}
	for _, valid := range Moods() {
		if mood == valid {
			return true
		}
	}
	return false
}

// HealthLogEntry is one saved mood/symptom/note record. Entries written before
// identifiers existed have an empty ID.
type HealthLogEntry struct {
	ID       string    `json:"id,omitempty"`
	Date     time.Time `json:"date"`
	Mood     string    `json:"mood,omitempty"`
	Symptoms []string  `json:"symptoms"`
	Note     string    `json:"note"`
}

// SameContent reports structural equality ignoring ID and symptom order.
func (entry HealthLogEntry) SameContent(other HealthLogEntry) bool {
	if !entry.Date.Equal(other.Date) || entry.Mood != other.Mood || entry.Note != other.Note {
		return false
	}
	if len(entry.Symptoms) != len(other.Symptoms) {
		return false
	}
	counts := make(map[string]int, len(entry.Symptoms))
	for _, tag := range entry.Symptoms {
		counts[tag]++
	}
	for _, tag := range other.Symptoms {
		counts[tag]--
		if counts[tag] < 0 {
			return false
		}
	}
	return true
}
