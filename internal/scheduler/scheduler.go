package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jtwaugh/taskweave/internal/constants"
	"github.com/jtwaugh/taskweave/internal/models"
	"github.com/jtwaugh/taskweave/internal/utils"
)

// Mode is a named scheduling preset controlling buffer time and packing tightness.
type Mode string

const (
	ModeStrict   Mode = "strict"
	ModeBalanced Mode = "balanced"
	ModeFlexible Mode = "flexible"
)

// ParseMode parses a mode name, defaulting to balanced for the empty string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeStrict, ModeBalanced, ModeFlexible:
		return Mode(s), nil
	case "":
		return ModeBalanced, nil
	default:
		return "", fmt.Errorf("invalid scheduling mode %q (expected strict, balanced, or flexible)", s)
	}
}

// ErrNoAvailability is returned when no availability windows are configured.
var ErrNoAvailability = errors.New("no availability windows configured")

// Options holds the ephemeral parameters for one scheduling run.
type Options struct {
	StartDate     string // YYYY-MM-DD; the first candidate day
	StartNextDay  bool   // begin on the day after StartDate
	HorizonDays   int    // maximum days to search; defaults to 90, capped at 365
	BufferMinutes int    // minimum gap between consecutive placements
	Mode          Mode   // scheduling preset; defaults to balanced
}

// Result describes the outcome of a scheduling run.
type Result struct {
	Success           bool
	Placements        []models.ScheduledTask
	TotalScheduledMin int
	CompletionDate    string // date of the last placement, empty if none
	UnplacedCount     int
	Message           string
}

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// interval is a half-open [start, end) range in minutes from midnight.
type interval struct {
	start int
	end   int
}

// ScheduleSubtasks assigns each subtask a date and start time using a greedy
// first-fit search in date-then-time order. Placements never overlap existing
// or newly-made placements (subject to buffer) and always lie entirely within
// an availability window valid for the placement date's weekday.
//
// The run is pure over its inputs: no input slice is mutated and identical
// inputs produce identical placements. Placement IDs are left empty for the
// caller to assign.
func (s *Scheduler) ScheduleSubtasks(subtasks []models.Subtask, slots []models.TimeSlot, existing []models.ScheduledTask, dueDate string, opts Options) (Result, error) {
	if len(slots) == 0 {
		return Result{Message: "No availability windows configured. Add one with 'taskweave slot add'."}, ErrNoAvailability
	}

	opts = withDefaults(opts)
	buffer := effectiveBuffer(opts.Mode, opts.BufferMinutes)

	startDay, lastDay, dueCapped, err := searchWindow(opts, dueDate)
	if err != nil {
		return Result{}, err
	}

	pending := orderedCopy(subtasks)
	for _, st := range pending {
		if st.DurationMin <= 0 {
			return Result{}, fmt.Errorf("subtask %q has non-positive duration", st.Title)
		}
	}

	daySlots, err := parseSlots(slots)
	if err != nil {
		return Result{}, err
	}

	occupancy, err := buildOccupancy(existing)
	if err != nil {
		return Result{}, err
	}

	result := Result{}
	next := 0

	for day := startDay; !day.After(lastDay) && next < len(pending); day = day.AddDate(0, 0, 1) {
		date := day.Format(constants.DateFormat)
		for _, ds := range daySlots {
			if !ds.slot.AppliesTo(day.Weekday()) {
				continue
			}
			// Pack as many subtasks into this window as fit before moving on.
			for next < len(pending) {
				st := pending[next]
				start, ok := firstFit(ds.start, ds.end, st.DurationMin, occupancy[date], buffer)
				if !ok {
					break
				}
				placement := models.ScheduledTask{
					TaskID:      st.TaskID,
					SubtaskID:   st.ID,
					Date:        date,
					Start:       utils.FormatMinutes(start),
					End:         utils.FormatMinutes(start + st.DurationMin),
					DurationMin: st.DurationMin,
				}
				result.Placements = append(result.Placements, placement)
				result.TotalScheduledMin += st.DurationMin
				result.CompletionDate = date
				occupancy[date] = insertInterval(occupancy[date], interval{start, start + st.DurationMin})
				next++
			}
		}
	}

	result.UnplacedCount = len(pending) - next
	result.Success = result.UnplacedCount == 0
	result.Message = buildMessage(result, len(pending), opts, dueDate, dueCapped)
	return result, nil
}

// FindAvailableTimeSlot applies the same first-fit search to a single unit of
// work, used for tasks that have no subtasks. It returns the placement that
// would be made, or an error if nothing fits within the horizon.
func (s *Scheduler) FindAvailableTimeSlot(task models.Task, slots []models.TimeSlot, existing []models.ScheduledTask, opts Options) (models.ScheduledTask, error) {
	duration := task.EstimatedMin
	if duration <= 0 {
		return models.ScheduledTask{}, fmt.Errorf("task %q has no estimated duration", task.Title)
	}

	unit := models.Subtask{TaskID: task.ID, Title: task.Title, DurationMin: duration}
	result, err := s.ScheduleSubtasks([]models.Subtask{unit}, slots, existing, task.DueDate, opts)
	if err != nil {
		return models.ScheduledTask{}, err
	}
	if !result.Success {
		return models.ScheduledTask{}, fmt.Errorf("no available time slot within %d days for %q", withDefaults(opts).HorizonDays, task.Title)
	}
	placement := result.Placements[0]
	placement.SubtaskID = ""
	return placement, nil
}

// withDefaults fills in horizon, buffer, and mode defaults and enforces bounds.
func withDefaults(opts Options) Options {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = constants.DefaultHorizonDays
	}
	if opts.HorizonDays > constants.MaxHorizonDays {
		opts.HorizonDays = constants.MaxHorizonDays
	}
	if opts.BufferMinutes < 0 {
		opts.BufferMinutes = 0
	}
	if opts.Mode == "" {
		opts.Mode = ModeBalanced
	}
	return opts
}

// effectiveBuffer tunes the configured buffer by mode: strict widens it,
// flexible halves it, balanced leaves it as configured.
func effectiveBuffer(mode Mode, buffer int) int {
	switch mode {
	case ModeStrict:
		return buffer + buffer/2
	case ModeFlexible:
		return buffer / 2
	default:
		return buffer
	}
}

// searchWindow resolves the first and last candidate days for a run. A due
// date caps the window when it falls inside the horizon; scheduling on the
// due date itself is allowed.
func searchWindow(opts Options, dueDate string) (start, last time.Time, dueCapped bool, err error) {
	start, err = time.Parse(constants.DateFormat, opts.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("invalid start date: %w", err)
	}
	if opts.StartNextDay {
		start = start.AddDate(0, 0, 1)
	}

	last = start.AddDate(0, 0, opts.HorizonDays-1)
	if dueDate != "" {
		due, parseErr := time.Parse(constants.DateFormat, dueDate)
		if parseErr != nil {
			return time.Time{}, time.Time{}, false, fmt.Errorf("invalid due date: %w", parseErr)
		}
		if due.Before(last) {
			last = due
			dueCapped = true
		}
	}
	return start, last, dueCapped, nil
}

// orderedCopy returns the subtasks sorted by their Order index without
// touching the caller's slice. The sort is stable so ties keep input order.
func orderedCopy(subtasks []models.Subtask) []models.Subtask {
	out := make([]models.Subtask, len(subtasks))
	copy(out, subtasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}

type daySlot struct {
	slot  models.TimeSlot
	start int
	end   int
}

// parseSlots converts availability windows to minute ranges, sorted by start
// time so the within-day walk is deterministic.
func parseSlots(slots []models.TimeSlot) ([]daySlot, error) {
	out := make([]daySlot, 0, len(slots))
	for _, slot := range slots {
		start, err := utils.ParseTimeToMinutes(slot.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid slot start time %q: %w", slot.Start, err)
		}
		end, err := utils.ParseTimeToMinutes(slot.End)
		if err != nil {
			return nil, fmt.Errorf("invalid slot end time %q: %w", slot.End, err)
		}
		if end <= start {
			return nil, fmt.Errorf("slot end %q must be after start %q", slot.End, slot.Start)
		}
		out = append(out, daySlot{slot: slot, start: start, end: end})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].start != out[j].start {
			return out[i].start < out[j].start
		}
		return out[i].end < out[j].end
	})
	return out, nil
}

// buildOccupancy indexes existing placements by date as sorted minute intervals.
func buildOccupancy(existing []models.ScheduledTask) (map[string][]interval, error) {
	occupancy := make(map[string][]interval)
	for _, placed := range existing {
		start, err := utils.ParseTimeToMinutes(placed.Start)
		if err != nil {
			return nil, fmt.Errorf("invalid start time on placement %s: %w", placed.ID, err)
		}
		end, err := utils.ParseTimeToMinutes(placed.End)
		if err != nil {
			return nil, fmt.Errorf("invalid end time on placement %s: %w", placed.ID, err)
		}
		occupancy[placed.Date] = insertInterval(occupancy[placed.Date], interval{start, end})
	}
	return occupancy, nil
}

// insertInterval keeps the per-date interval list sorted by start time.
func insertInterval(intervals []interval, iv interval) []interval {
	idx := sort.Search(len(intervals), func(i int) bool {
		return intervals[i].start >= iv.start
	})
	intervals = append(intervals, interval{})
	copy(intervals[idx+1:], intervals[idx:])
	intervals[idx] = iv
	return intervals
}

// firstFit walks forward from the window start, skipping occupied intervals
// padded by the buffer on both sides, and returns the first start minute
// where the duration fits entirely inside the window.
func firstFit(slotStart, slotEnd, duration int, occupied []interval, buffer int) (int, bool) {
	cursor := slotStart
	for _, iv := range occupied {
		padded := interval{start: iv.start - buffer, end: iv.end + buffer}
		if padded.end <= cursor {
			continue
		}
		if padded.start >= cursor+duration {
			break
		}
		cursor = padded.end
	}
	if cursor+duration <= slotEnd {
		return cursor, true
	}
	return 0, false
}

func buildMessage(result Result, total int, opts Options, dueDate string, dueCapped bool) string {
	if total == 0 {
		return "Nothing to schedule."
	}
	if result.Success {
		return fmt.Sprintf("Scheduled %d subtask(s), %d minutes total, finishing by %s.", len(result.Placements), result.TotalScheduledMin, result.CompletionDate)
	}

	msg := fmt.Sprintf("Scheduled %d of %d subtask(s); %d could not be placed", len(result.Placements), total, result.UnplacedCount)
	if dueCapped {
		msg += fmt.Sprintf(" before the %s deadline", dueDate)
	} else {
		msg += fmt.Sprintf(" within the %d-day horizon", opts.HorizonDays)
	}
	msg += ". Consider extending the deadline, adding availability windows, shortening subtasks, or scheduling fewer at once."
	return msg
}
