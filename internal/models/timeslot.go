package models

import "time"

// TimeSlot is a recurring daily availability window. Start and End use the
// HH:MM format; Weekdays lists the days the window applies to.
type TimeSlot struct {
	ID        string         `json:"id"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	Weekdays  []time.Weekday `json:"weekdays"`
	DeletedAt *string        `json:"deleted_at,omitempty"` // RFC3339 timestamp
}

// AppliesTo reports whether the slot is valid on the given weekday.
func (s TimeSlot) AppliesTo(day time.Weekday) bool {
	for _, wd := range s.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}
