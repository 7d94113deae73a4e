package models

// Settings represents application-wide settings
type Settings struct {
	DefaultMode        string `json:"default_mode"`         // scheduling mode preset: strict, balanced, or flexible
	BufferMinutes      int    `json:"buffer_minutes"`       // gap enforced between consecutive placements
	HorizonDays        int    `json:"horizon_days"`         // maximum days the scheduler searches ahead
	StartNextDay       bool   `json:"start_next_day"`       // whether scheduling begins on the next calendar day
	DefaultDurationMin int    `json:"default_duration_min"` // fallback duration when estimation fails
	PlannerModel       string `json:"planner_model"`        // model name sent to the planner backend
	PlannerBaseURL     string `json:"planner_base_url"`     // override for the planner API base URL, empty for default
	Timezone           string `json:"timezone"`             // IANA timezone name, or "Local" for system timezone
}
