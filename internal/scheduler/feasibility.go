package scheduler

import (
	"fmt"

	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/models"
)

// Feasibility is the advisory result of a pre-check comparing total required
// minutes against total available minutes across the search window. It does
// not place anything, and a positive result does not guarantee a full
// scheduling run will succeed: fragmented availability can still strand a
// long subtask.
type Feasibility struct {
	Feasible       bool
	RequiredMin    int
	AvailableMin   int
	DaysSearched   int
	Recommendation string
	Suggestions    []string
}

// AnalyzeFeasibility estimates whether the given subtasks can fit into the
// availability remaining across the horizon, accounting for existing
// placements and the inter-task buffer. It is much cheaper than a full
// scheduling run and is advisory only.
func (s *Scheduler) AnalyzeFeasibility(subtasks []models.Subtask, slots []models.TimeSlot, existing []models.ScheduledTask, dueDate string, opts Options) (Feasibility, error) {
	if len(slots) == 0 {
		return Feasibility{}, ErrNoAvailability
	}

	opts = withDefaults(opts)
	buffer := effectiveBuffer(opts.Mode, opts.BufferMinutes)

	startDay, lastDay, dueCapped, err := searchWindow(opts, dueDate)
	if err != nil {
		return Feasibility{}, err
	}

	daySlots, err := parseSlots(slots)
	if err != nil {
		return Feasibility{}, err
	}

	occupancy, err := buildOccupancy(existing)
	if err != nil {
		return Feasibility{}, err
	}

	required := 0
	for _, st := range subtasks {
		required += st.DurationMin
	}
	if len(subtasks) > 1 {
		required += buffer * (len(subtasks) - 1)
	}

	analysis := Feasibility{RequiredMin: required}
	for day := startDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		analysis.DaysSearched++
		date := day.Format(constants.DateFormat)
		for _, ds := range daySlots {
			if !ds.slot.AppliesTo(day.Weekday()) {
				continue
			}
			analysis.AvailableMin += freeMinutes(ds.start, ds.end, occupancy[date])
		}
	}

	analysis.Feasible = analysis.AvailableMin >= analysis.RequiredMin
	analysis.Recommendation, analysis.Suggestions = feasibilityAdvice(analysis, dueDate, dueCapped)
	return analysis, nil
}

// freeMinutes returns the unoccupied minutes of [slotStart, slotEnd) after
// subtracting the overlap of each occupied interval.
func freeMinutes(slotStart, slotEnd int, occupied []interval) int {
	free := slotEnd - slotStart
	cursor := slotStart
	for _, iv := range occupied {
		start := max(iv.start, cursor)
		end := min(iv.end, slotEnd)
		if end > start {
			free -= end - start
			cursor = end
		}
	}
	if free < 0 {
		return 0
	}
	return free
}

func feasibilityAdvice(analysis Feasibility, dueDate string, dueCapped bool) (string, []string) {
	if analysis.Feasible {
		return fmt.Sprintf("Looks feasible: %d minutes required, %d available across %d day(s).",
			analysis.RequiredMin, analysis.AvailableMin, analysis.DaysSearched), nil
	}

	shortfall := analysis.RequiredMin - analysis.AvailableMin
	recommendation := fmt.Sprintf("Not feasible as configured: %d minutes required but only %d available across %d day(s), a shortfall of %d minutes.",
		analysis.RequiredMin, analysis.AvailableMin, analysis.DaysSearched, shortfall)

	suggestions := []string{
		"add or widen availability windows",
		"shorten or split long subtasks",
		"schedule fewer subtasks at once",
	}
	if dueCapped {
		suggestions = append([]string{fmt.Sprintf("extend the %s deadline", dueDate)}, suggestions...)
	}
	return recommendation, suggestions
}
