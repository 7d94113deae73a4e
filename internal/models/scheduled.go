package models

// ScheduledTask is a concrete placement of a subtask (or a whole task when
// SubtaskID is empty) onto a specific date and time range. Placements are
// created by the scheduler and deleted when the owning task is deleted.
//
// Invariant: the [Start, End) range lies entirely within some TimeSlot valid
// for the date's weekday and does not overlap any other placement on that
// date.
type ScheduledTask struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	SubtaskID   string `json:"subtask_id,omitempty"`
	Date        string `json:"date"`  // YYYY-MM-DD format
	Start       string `json:"start"` // HH:MM format
	End         string `json:"end"`   // HH:MM format
	DurationMin int    `json:"duration_min"`
}
