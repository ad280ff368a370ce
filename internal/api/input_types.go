package api

type periodRangePayload struct {
	Start string `json:"start" form:"start"`
	Days  int    `json:"days" form:"days"`
}

type settingsPayload struct {
	CycleLength  int `json:"cycleLength" form:"cycleLength"`
	PeriodLength int `json:"periodLength" form:"periodLength"`
}

type healthLogPayload struct {
	Mood     string   `json:"mood" form:"mood"`
	Symptoms []string `json:"symptoms" form:"symptoms"`
	Note     string   `json:"note" form:"note"`
}

type symptomTogglePayload struct {
	Tag string `json:"tag" form:"tag"`
}
