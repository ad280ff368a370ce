package models

// SymptomsByDate maps a DayLayout key to the tags logged that day. A missing key
// means nothing was recorded, not zero symptoms.
type SymptomsByDate map[string][]string

type SymptomCategory struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

func DefaultSymptomCategories() []SymptomCategory {
	return []SymptomCategory{
		{
			Title: "Physical & Anatomical",
			Items: []string{"Cramps", "Bloating", "Backache", "Breast Tenderness", "Acne", "Digestive Issues"},
		},
		{
			Title: "Neurological & Mental",
			Items: []string{"Headache", "Migraine", "Brain Fog", "High Focus", "Insomnia", "Sensory Sensitivity"},
		},
		{
			Title: "Reproductive & Sexual",
			Items: []string{"High Libido", "Low Libido", "Spotting", "Egg White CM", "Sticky CM", "Dry"},
		},
	}
}
