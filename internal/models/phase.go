package models

type PhaseLabel string

const (
	PhaseMenstrual  PhaseLabel = "menstrual"
	PhaseFollicular PhaseLabel = "follicular"
	PhaseOvulatory  PhaseLabel = "ovulatory"
	PhaseLuteal     PhaseLabel = "luteal"
)
