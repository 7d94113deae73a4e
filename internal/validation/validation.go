package validation

import (
	"fmt"
	"time"

	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
)

// Conflict describes a single integrity problem found in stored data.
type Conflict struct {
	Type        constants.ConflictType
	Description string
}

// CheckPlacements verifies the scheduler's two core invariants against the
// stored calendar: no two placements overlap on the same date (buffer
// included), and every placement lies inside an availability window valid
// for its date's weekday.
func CheckPlacements(placements []models.ScheduledTask, slots []models.TimeSlot, buffer int) []Conflict {
	var conflicts []Conflict

	type span struct {
		placement models.ScheduledTask
		start     int
		end       int
		day       time.Weekday
	}

	spans := make([]span, 0, len(placements))
	for _, p := range placements {
		start, err := utils.ParseTimeToMinutes(p.Start)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("placement %s has invalid start time %q", p.ID, p.Start),
			})
			continue
		}
		end, err := utils.ParseTimeToMinutes(p.End)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("placement %s has invalid end time %q", p.ID, p.End),
			})
			continue
		}
		date, err := utils.ParseDate(p.Date)
		if err != nil {
			conflicts = append(conflicts, Conflict{
				Type:        constants.ConflictInvalidDateTime,
				Description: fmt.Sprintf("placement %s has invalid date %q", p.ID, p.Date),
			})
			continue
		}
		spans = append(spans, span{placement: p, start: start, end: end, day: date.Weekday()})
	}

	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.placement.Date != b.placement.Date {
				continue
			}
			if a.start < b.end+buffer && b.start < a.end+buffer {
				conflicts = append(conflicts, Conflict{
					Type: constants.ConflictOverlappingPlacements,
					Description: fmt.Sprintf("placements %s and %s overlap on %s (%s-%s vs %s-%s)",
						a.placement.ID, b.placement.ID, a.placement.Date,
						a.placement.Start, a.placement.End, b.placement.Start, b.placement.End),
				})
			}
		}
	}

	for _, sp := range spans {
		if !withinAvailability(sp.start, sp.end, sp.day, slots) {
			conflicts = append(conflicts, Conflict{
				Type: constants.ConflictOutsideAvailability,
				Description: fmt.Sprintf("placement %s (%s %s-%s) lies outside every availability window",
					sp.placement.ID, sp.placement.Date, sp.placement.Start, sp.placement.End),
			})
		}
	}

	return conflicts
}

func withinAvailability(start, end int, day time.Weekday, slots []models.TimeSlot) bool {
	for _, slot := range slots {
		if !slot.AppliesTo(day) {
			continue
		}
		slotStart, err := utils.ParseTimeToMinutes(slot.Start)
		if err != nil {
			continue
		}
		slotEnd, err := utils.ParseTimeToMinutes(slot.End)
		if err != nil {
			continue
		}
		if start >= slotStart && end <= slotEnd {
			return true
		}
	}
	return false
}

// CheckSlotOverlap flags availability windows that overlap on a shared
// weekday. Overlap is allowed but usually a configuration mistake since it
// makes the same wall-clock time count twice in feasibility estimates.
func CheckSlotOverlap(slots []models.TimeSlot) []Conflict {
	var conflicts []Conflict
	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			shared := sharedWeekday(slots[i], slots[j])
			if shared == nil {
				continue
			}
			iStart, err1 := utils.ParseTimeToMinutes(slots[i].Start)
			iEnd, err2 := utils.ParseTimeToMinutes(slots[i].End)
			jStart, err3 := utils.ParseTimeToMinutes(slots[j].Start)
			jEnd, err4 := utils.ParseTimeToMinutes(slots[j].End)
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				continue
			}
			if iStart < jEnd && jStart < iEnd {
				conflicts = append(conflicts, Conflict{
					Type: constants.ConflictOverlappingSlots,
					Description: fmt.Sprintf("availability windows %s and %s overlap on %s",
						slots[i].ID, slots[j].ID, shared.String()),
				})
			}
		}
	}
	return conflicts
}

func sharedWeekday(a, b models.TimeSlot) *time.Weekday {
	for _, wd := range a.Weekdays {
		if b.AppliesTo(wd) {
			day := wd
			return &day
		}
	}
	return nil
}

// CheckOrphans flags placements whose owning task no longer exists or is
// deleted. These should not occur since task deletion cascades, but a crash
// between writes can leave them behind.
func CheckOrphans(placements []models.ScheduledTask, tasks []models.Task) []Conflict {
	alive := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.DeletedAt == nil {
			alive[t.ID] = true
		}
	}

	var conflicts []Conflict
	for _, p := range placements {
		if !alive[p.TaskID] {
			conflicts = append(conflicts, Conflict{
				Type:        constants.ConflictOrphanedPlacement,
				Description: fmt.Sprintf("placement %s references missing or deleted task %s", p.ID, p.TaskID),
			})
		}
	}
	return conflicts
}
